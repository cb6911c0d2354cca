package repository

import (
	"context"
	"errors"
	"time"

	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuoteRequestsTableName = "quote_requests"

type monthlyVolumeItem struct {
	Mono   int `dynamodbav:"mono"`
	Colour int `dynamodbav:"colour"`
	Total  int `dynamodbav:"total"`
}

type paperRequirementsItem struct {
	PrimarySize     string   `dynamodbav:"primary_size,omitempty"`
	AdditionalSizes []string `dynamodbav:"additional_sizes,omitempty"`
	SpecialPaper    bool     `dynamodbav:"special_paper,omitempty"`
}

type currentCostsItem struct {
	MonoRate           float64 `dynamodbav:"mono_rate,omitempty"`
	ColourRate         float64 `dynamodbav:"colour_rate,omitempty"`
	QuarterlyLeaseCost float64 `dynamodbav:"quarterly_lease_cost,omitempty"`
	QuarterlyService   float64 `dynamodbav:"quarterly_service,omitempty"`
}

type currentSetupItem struct {
	CurrentCosts    currentCostsItem `dynamodbav:"current_costs"`
	ContractEndDate string           `dynamodbav:"contract_end_date,omitempty"`
}

type requirementsItem struct {
	Priority          string   `dynamodbav:"priority,omitempty"`
	EssentialFeatures []string `dynamodbav:"essential_features,omitempty"`
	MinSpeed          int      `dynamodbav:"min_speed,omitempty"`
}

type budgetItem struct {
	MaxLeasePrice float64 `dynamodbav:"max_lease_price,omitempty"`
	PreferredTerm string  `dynamodbav:"preferred_term,omitempty"`
}

type urgencyItem struct {
	Timeframe string `dynamodbav:"timeframe,omitempty"`
}

type locationItem struct {
	Postcode string `dynamodbav:"postcode,omitempty"`
	City     string `dynamodbav:"city,omitempty"`
	Region   string `dynamodbav:"region,omitempty"`
}

type aiAnalysisItem struct {
	Processed       bool     `dynamodbav:"processed"`
	ProcessedAt     string   `dynamodbav:"processed_at,omitempty"`
	RiskFactors     []string `dynamodbav:"risk_factors"`
	Recommendations []string `dynamodbav:"recommendations,omitempty"`
}

type quoteRequestItem struct {
	ID          string `dynamodbav:"id"`
	SubmittedBy string `dynamodbav:"submitted_by"`
	CompanyName string `dynamodbav:"company_name"`

	MonthlyVolume     monthlyVolumeItem     `dynamodbav:"monthly_volume"`
	VolumeRange       string                `dynamodbav:"volume_range,omitempty"`
	PaperRequirements paperRequirementsItem `dynamodbav:"paper_requirements"`
	CurrentSetup      currentSetupItem      `dynamodbav:"current_setup"`
	Requirements      requirementsItem      `dynamodbav:"requirements"`
	Budget            budgetItem            `dynamodbav:"budget"`
	Urgency           urgencyItem           `dynamodbav:"urgency"`
	Location          locationItem          `dynamodbav:"location"`

	MultipleFloors     *bool  `dynamodbav:"multiple_floors,omitempty"`
	NumOfficeLocations *int   `dynamodbav:"num_office_locations,omitempty"`
	MultiFloorLegacy   *bool  `dynamodbav:"multi_floor,omitempty"`
	ColourPreference   string `dynamodbav:"colour,omitempty"`
	NumLocationsLegacy *int   `dynamodbav:"num_locations,omitempty"`
	UserID             string `dynamodbav:"user_id,omitempty"`

	Status     string         `dynamodbav:"status"`
	AIAnalysis aiAnalysisItem `dynamodbav:"ai_analysis"`
	Quotes     []string       `dynamodbav:"quotes"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// QuoteRequestDynamoRepository persists QuoteRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Intake owns creation; the engine only advances lifecycle fields, appends
// quote ids and records diagnostics. ai_analysis and quotes are written as
// non-null containers at intake so list_append stays valid here.

type QuoteRequestDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRequestRepository = (*QuoteRequestDynamoRepository)(nil)

func NewQuoteRequestDynamoRepository(ddb *dynamodb.Client) *QuoteRequestDynamoRepository {
	return &QuoteRequestDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTE_REQUESTS_TABLE", defaultQuoteRequestsTableName),
	}
}

func (r *QuoteRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuoteRequest{}, nil
	}

	var it quoteRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteRequestItem(it), nil
}

func (r *QuoteRequestDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.QuoteRequestStatus) (entities.QuoteRequest, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteRequestDynamoRepository) MarkCancelled(ctx context.Context, id, reason string) (entities.QuoteRequest, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at, " +
			"#ai.#risks = list_append(if_not_exists(#ai.#risks, :empty), :reason)"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(entities.QuoteRequestStatusCancelled)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":reason": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: reason},
			}},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
			"#ai":         "ai_analysis",
			"#risks":      "risk_factors",
		}
		return expr, vals, names
	})
}

func (r *QuoteRequestDynamoRepository) MarkMatched(ctx context.Context, id string, quoteIDs []string, processedAt time.Time) (entities.QuoteRequest, error) {
	ids := make([]types.AttributeValue, 0, len(quoteIDs))
	for _, qid := range quoteIDs {
		ids = append(ids, &types.AttributeValueMemberS{Value: qid})
	}

	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at, " +
			"#quotes = list_append(if_not_exists(#quotes, :empty), :ids), " +
			"#ai.#processed = :processed, #ai.#processed_at = :processed_at"
		vals := map[string]types.AttributeValue{
			":status":       &types.AttributeValueMemberS{Value: string(entities.QuoteRequestStatusMatched)},
			":updated_at":   &types.AttributeValueMemberS{Value: now},
			":empty":        &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":ids":          &types.AttributeValueMemberL{Value: ids},
			":processed":    &types.AttributeValueMemberBOOL{Value: true},
			":processed_at": &types.AttributeValueMemberS{Value: processedAt.UTC().Format(time.RFC3339Nano)},
		}
		names := map[string]string{
			"#status":       "status",
			"#updated_at":   "updated_at",
			"#quotes":       "quotes",
			"#ai":           "ai_analysis",
			"#processed":    "processed",
			"#processed_at": "processed_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteRequestDynamoRepository) AddRiskFactor(ctx context.Context, id, risk string) (entities.QuoteRequest, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #updated_at = :updated_at, " +
			"#ai.#risks = list_append(if_not_exists(#ai.#risks, :empty), :risk)"
		vals := map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":risk": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: risk},
			}},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
			"#ai":         "ai_analysis",
			"#risks":      "risk_factors",
		}
		return expr, vals, names
	})
}

func (r *QuoteRequestDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.QuoteRequest, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.QuoteRequest{}, nil
		}
		return entities.QuoteRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.QuoteRequest{}, nil
	}
	var it quoteRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteRequestItem(it), nil
}

func fromQuoteRequestItem(it quoteRequestItem) entities.QuoteRequest {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	sizes := make([]entities.PaperSize, 0, len(it.PaperRequirements.AdditionalSizes))
	for _, s := range it.PaperRequirements.AdditionalSizes {
		sizes = append(sizes, entities.PaperSize(s))
	}
	if len(sizes) == 0 {
		sizes = nil
	}

	return entities.QuoteRequest{
		ID:          it.ID,
		SubmittedBy: it.SubmittedBy,
		CompanyName: it.CompanyName,
		MonthlyVolume: entities.MonthlyVolume{
			Mono:   it.MonthlyVolume.Mono,
			Colour: it.MonthlyVolume.Colour,
			Total:  it.MonthlyVolume.Total,
		},
		VolumeRange: entities.VolumeRange(it.VolumeRange),
		PaperRequirements: entities.PaperRequirements{
			PrimarySize:     entities.PaperSize(it.PaperRequirements.PrimarySize),
			AdditionalSizes: sizes,
			SpecialPaper:    it.PaperRequirements.SpecialPaper,
		},
		CurrentSetup: entities.CurrentSetup{
			CurrentCosts: entities.CurrentCosts{
				MonoRate:           it.CurrentSetup.CurrentCosts.MonoRate,
				ColourRate:         it.CurrentSetup.CurrentCosts.ColourRate,
				QuarterlyLeaseCost: it.CurrentSetup.CurrentCosts.QuarterlyLeaseCost,
				QuarterlyService:   it.CurrentSetup.CurrentCosts.QuarterlyService,
			},
			ContractEndDate: parseOptionalTime(it.CurrentSetup.ContractEndDate),
		},
		Requirements: entities.Requirements{
			Priority:          entities.Priority(it.Requirements.Priority),
			EssentialFeatures: it.Requirements.EssentialFeatures,
			MinSpeed:          it.Requirements.MinSpeed,
		},
		Budget: entities.Budget{
			MaxLeasePrice: it.Budget.MaxLeasePrice,
			PreferredTerm: it.Budget.PreferredTerm,
		},
		Urgency:  entities.Urgency{Timeframe: it.Urgency.Timeframe},
		Location: entities.Location{Postcode: it.Location.Postcode, City: it.Location.City, Region: it.Location.Region},

		MultipleFloors:     it.MultipleFloors,
		NumOfficeLocations: it.NumOfficeLocations,
		MultiFloorLegacy:   it.MultiFloorLegacy,
		ColourPreference:   it.ColourPreference,
		NumLocationsLegacy: it.NumLocationsLegacy,
		UserID:             it.UserID,

		Status: entities.QuoteRequestStatus(it.Status),
		AIAnalysis: entities.AIAnalysis{
			Processed:       it.AIAnalysis.Processed,
			ProcessedAt:     parseOptionalTime(it.AIAnalysis.ProcessedAt),
			RiskFactors:     it.AIAnalysis.RiskFactors,
			Recommendations: it.AIAnalysis.Recommendations,
		},
		Quotes:    it.Quotes,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
