package repository

import (
	"context"
	"time"

	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultVendorsTableName = "vendors"
	batchGetChunkSize       = 100
)

type vendorItem struct {
	ID          string `dynamodbav:"id"`
	CompanyName string `dynamodbav:"company_name"`
	Email       string `dynamodbav:"email"`
	Slug        string `dynamodbav:"slug"`

	Tier                 string `dynamodbav:"tier"`
	SubscriptionStatus   string `dynamodbav:"subscription_status"`
	StripeCustomerID     string `dynamodbav:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string `dynamodbav:"stripe_subscription_id,omitempty"`

	Status    string   `dynamodbav:"status"`
	Locations []string `dynamodbav:"locations,omitempty"`
	Services  []string `dynamodbav:"services,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// VendorDynamoRepository reads Vendor entities from DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The matching engine never writes vendors; onboarding owns that table.

type VendorDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IVendorRepository = (*VendorDynamoRepository)(nil)

func NewVendorDynamoRepository(ddb *dynamodb.Client) *VendorDynamoRepository {
	return &VendorDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("VENDORS_TABLE", defaultVendorsTableName),
	}
}

func (r *VendorDynamoRepository) GetByID(ctx context.Context, id string) (entities.Vendor, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Vendor{}, err
	}
	if len(out.Item) == 0 {
		return entities.Vendor{}, nil
	}

	var it vendorItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Vendor{}, err
	}
	return fromVendorItem(it), nil
}

func (r *VendorDynamoRepository) ListActiveByIDs(ctx context.Context, ids []string) (map[string]entities.Vendor, error) {
	active := make(map[string]entities.Vendor, len(ids))

	for start := 0; start < len(ids); start += batchGetChunkSize {
		end := start + batchGetChunkSize
		if end > len(ids) {
			end = len(ids)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			})
		}

		requested := map[string]types.KeysAndAttributes{
			r.tableName: {Keys: keys},
		}
		// BatchGetItem may return unprocessed keys under throttling; loop
		// until the batch drains.
		for len(requested) > 0 {
			out, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
				RequestItems: requested,
			})
			if err != nil {
				return nil, err
			}
			for _, raw := range out.Responses[r.tableName] {
				var it vendorItem
				if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
					return nil, err
				}
				v := fromVendorItem(it)
				if v.Selectable() {
					active[v.ID] = v
				}
			}
			requested = out.UnprocessedKeys
		}
	}
	return active, nil
}

func fromVendorItem(it vendorItem) entities.Vendor {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Vendor{
		ID:                   it.ID,
		CompanyName:          it.CompanyName,
		Email:                it.Email,
		Slug:                 it.Slug,
		Tier:                 entities.VendorTier(it.Tier),
		SubscriptionStatus:   entities.SubscriptionStatus(it.SubscriptionStatus),
		StripeCustomerID:     it.StripeCustomerID,
		StripeSubscriptionID: it.StripeSubscriptionID,
		Status:               entities.VendorStatus(it.Status),
		Locations:            it.Locations,
		Services:             it.Services,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}
}
