package repository

import (
	"context"
	"time"

	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultOrdersTableName = "orders"

type orderItem struct {
	ID             string  `dynamodbav:"id"`
	QuoteReference string  `dynamodbav:"quote_reference"`
	QuoteRequestID string  `dynamodbav:"quote_request_id"`
	VendorID       string  `dynamodbav:"vendor_id"`
	BuyerID        string  `dynamodbav:"buyer_id"`
	OrderType      string  `dynamodbav:"order_type"`
	Status         string  `dynamodbav:"status"`
	MonthlyCost    float64 `dynamodbav:"monthly_cost"`
	CreatedAt      string  `dynamodbav:"created_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	it := orderItem{
		ID:             o.ID,
		QuoteReference: o.QuoteReference,
		QuoteRequestID: o.QuoteRequestID,
		VendorID:       o.VendorID,
		BuyerID:        o.BuyerID,
		OrderType:      string(o.OrderType),
		Status:         string(o.Status),
		MonthlyCost:    o.MonthlyCost,
		CreatedAt:      o.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}
