package repository

import (
	"context"
	"strconv"
	"time"

	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultVendorProductsTableName = "vendor_products"

type cpcRatesItem struct {
	A4Mono   float64 `dynamodbav:"a4_mono"`
	A4Colour float64 `dynamodbav:"a4_colour"`
	A3Mono   float64 `dynamodbav:"a3_mono"`
	A3Colour float64 `dynamodbav:"a3_colour"`
}

type productCostsItem struct {
	MachineCost      float64      `dynamodbav:"machine_cost"`
	Installation     float64      `dynamodbav:"installation"`
	ProfitMargin     float64      `dynamodbav:"profit_margin"`
	TotalMachineCost float64      `dynamodbav:"total_machine_cost"`
	CPCRates         cpcRatesItem `dynamodbav:"cpc_rates"`
}

type leaseRatesItem struct {
	Term36 float64 `dynamodbav:"term_36,omitempty"`
	Term48 float64 `dynamodbav:"term_48,omitempty"`
	Term60 float64 `dynamodbav:"term_60,omitempty"`
	Term72 float64 `dynamodbav:"term_72,omitempty"`
}

// Catalog rows flatten the filterable attributes (in_stock, volume_range,
// min_volume, max_volume) to the top level so the candidate scan needs no
// nested document paths.
type vendorProductItem struct {
	ID       string `dynamodbav:"id"`
	VendorID string `dynamodbav:"vendor_id"`

	Manufacturer   string   `dynamodbav:"manufacturer"`
	Model          string   `dynamodbav:"model"`
	Speed          int      `dynamodbav:"speed"`
	Features       []string `dynamodbav:"features,omitempty"`
	PaperPrimary   string   `dynamodbav:"paper_primary"`
	PaperSupported []string `dynamodbav:"paper_supported,omitempty"`
	VolumeRange    string   `dynamodbav:"volume_range"`
	MinVolume      int      `dynamodbav:"min_volume"`
	MaxVolume      int      `dynamodbav:"max_volume"`

	SalePrice  float64          `dynamodbav:"sale_price,omitempty"`
	Costs      productCostsItem `dynamodbav:"costs"`
	LeaseRates leaseRatesItem   `dynamodbav:"lease_rates"`

	ServiceLevel     string  `dynamodbav:"service_level"`
	ResponseTime     string  `dynamodbav:"response_time,omitempty"`
	QuarterlyService float64 `dynamodbav:"quarterly_service_cost,omitempty"`

	InStock            bool `dynamodbav:"in_stock"`
	LeadTimeDays       int  `dynamodbav:"lead_time_days"`
	InstallationWindow int  `dynamodbav:"installation_window_days,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// VendorProductDynamoRepository reads catalog rows from DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: vendor_id-index (PK: vendor_id), owned by the catalog service
//
// FindCandidates scans with a server-side filter. The catalog is small
// (thousands of rows) so a filtered scan beats maintaining a bucket GSI per
// volume range; revisit if the table grows past that.

type VendorProductDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IVendorProductRepository = (*VendorProductDynamoRepository)(nil)

func NewVendorProductDynamoRepository(ddb *dynamodb.Client) *VendorProductDynamoRepository {
	return &VendorProductDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("VENDOR_PRODUCTS_TABLE", defaultVendorProductsTableName),
	}
}

func (r *VendorProductDynamoRepository) FindCandidates(ctx context.Context, q interfaces.CandidateQuery) ([]entities.VendorProduct, error) {
	filter := "in_stock = :in_stock AND (volume_range = :volume_range OR (min_volume <= :min_ceiling AND max_volume >= :max_floor))"
	values := map[string]types.AttributeValue{
		":in_stock":     &types.AttributeValueMemberBOOL{Value: true},
		":volume_range": &types.AttributeValueMemberS{Value: string(q.VolumeRange)},
		":min_ceiling":  &types.AttributeValueMemberN{Value: strconv.Itoa(q.MinVolumeCeiling)},
		":max_floor":    &types.AttributeValueMemberN{Value: strconv.Itoa(q.MaxVolumeFloor)},
	}

	var (
		products []entities.VendorProduct
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          aws.String(filter),
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it vendorProductItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			products = append(products, fromVendorProductItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return products, nil
}

func fromVendorProductItem(it vendorProductItem) entities.VendorProduct {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	supported := make([]entities.PaperSize, 0, len(it.PaperSupported))
	for _, s := range it.PaperSupported {
		supported = append(supported, entities.PaperSize(s))
	}
	if len(supported) == 0 {
		supported = nil
	}

	return entities.VendorProduct{
		ID:           it.ID,
		VendorID:     it.VendorID,
		Manufacturer: it.Manufacturer,
		Model:        it.Model,
		Speed:        it.Speed,
		Features:     it.Features,
		PaperSizes: entities.PaperSizes{
			Primary:   entities.PaperSize(it.PaperPrimary),
			Supported: supported,
		},
		VolumeRange: entities.VolumeRange(it.VolumeRange),
		MinVolume:   it.MinVolume,
		MaxVolume:   it.MaxVolume,
		SalePrice:   it.SalePrice,
		Costs: entities.ProductCosts{
			MachineCost:      it.Costs.MachineCost,
			Installation:     it.Costs.Installation,
			ProfitMargin:     it.Costs.ProfitMargin,
			TotalMachineCost: it.Costs.TotalMachineCost,
			CPCRates: entities.CPCRates{
				A4Mono:   it.Costs.CPCRates.A4Mono,
				A4Colour: it.Costs.CPCRates.A4Colour,
				A3Mono:   it.Costs.CPCRates.A3Mono,
				A3Colour: it.Costs.CPCRates.A3Colour,
			},
		},
		LeaseRates: entities.LeaseRates{
			Term36: it.LeaseRates.Term36,
			Term48: it.LeaseRates.Term48,
			Term60: it.LeaseRates.Term60,
			Term72: it.LeaseRates.Term72,
		},
		Service: entities.ProductService{
			Level:                entities.ServiceLevel(it.ServiceLevel),
			ResponseTime:         it.ResponseTime,
			QuarterlyServiceCost: it.QuarterlyService,
		},
		Availability: entities.Availability{
			InStock:            it.InStock,
			LeadTimeDays:       it.LeadTimeDays,
			InstallationWindow: it.InstallationWindow,
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
