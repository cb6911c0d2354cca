package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName = "quotes"
	quotesRequestIDIndex   = "quote_request_id-index"
)

type scoreBreakdownItem struct {
	VolumeMatch      float64 `dynamodbav:"volume_match"`
	CostEfficiency   float64 `dynamodbav:"cost_efficiency"`
	SpeedMatch       float64 `dynamodbav:"speed_match"`
	FeatureMatch     float64 `dynamodbav:"feature_match"`
	ReliabilityMatch float64 `dynamodbav:"reliability_match"`
	PaperSizeMatch   float64 `dynamodbav:"paper_size_match"`
	UrgencyMatch     float64 `dynamodbav:"urgency_match"`
}

type matchScoreItem struct {
	Total      float64            `dynamodbav:"total"`
	Confidence string             `dynamodbav:"confidence"`
	Breakdown  scoreBreakdownItem `dynamodbav:"breakdown"`
	Reasoning  []string           `dynamodbav:"reasoning,omitempty"`
}

type savingsItem struct {
	MonthlyAmount   float64 `dynamodbav:"monthly_amount"`
	AnnualAmount    float64 `dynamodbav:"annual_amount"`
	PercentageSaved float64 `dynamodbav:"percentage_saved"`
	CurrentMonthly  float64 `dynamodbav:"current_monthly"`
}

type quoteCostsItem struct {
	MonoRate         float64     `dynamodbav:"mono_rate"`
	ColourRate       float64     `dynamodbav:"colour_rate"`
	MonoCPCCost      float64     `dynamodbav:"mono_cpc_cost"`
	ColourCPCCost    float64     `dynamodbav:"colour_cpc_cost"`
	TotalCPCCost     float64     `dynamodbav:"total_cpc_cost"`
	MonthlyLease     float64     `dynamodbav:"monthly_lease"`
	MonthlyService   float64     `dynamodbav:"monthly_service"`
	TotalMonthlyCost float64     `dynamodbav:"total_monthly_cost"`
	Savings          savingsItem `dynamodbav:"savings"`
}

type leaseOptionItem struct {
	TermMonths       int     `dynamodbav:"term_months"`
	QuarterlyPayment float64 `dynamodbav:"quarterly_payment"`
	MonthlyPayment   float64 `dynamodbav:"monthly_payment"`
	TotalCost        float64 `dynamodbav:"total_cost"`
	Margin           float64 `dynamodbav:"margin,omitempty"`
	IsRecommended    bool    `dynamodbav:"is_recommended"`
}

type quoteTermsItem struct {
	ValidUntil         string `dynamodbav:"valid_until"`
	DeliveryTime       string `dynamodbav:"delivery_time,omitempty"`
	InstallationTime   string `dynamodbav:"installation_time,omitempty"`
	PaymentTerms       string `dynamodbav:"payment_terms,omitempty"`
	CancellationPolicy string `dynamodbav:"cancellation_policy,omitempty"`
}

type productSummaryItem struct {
	Manufacturer   string   `dynamodbav:"manufacturer"`
	Model          string   `dynamodbav:"model"`
	Speed          int      `dynamodbav:"speed"`
	Features       []string `dynamodbav:"features,omitempty"`
	PaperPrimary   string   `dynamodbav:"paper_primary"`
	PaperSupported []string `dynamodbav:"paper_supported,omitempty"`
	VolumeRange    string   `dynamodbav:"volume_range"`
}

type userRequirementsItem struct {
	MonthlyVolume monthlyVolumeItem `dynamodbav:"monthly_volume"`
	PaperSize     string            `dynamodbav:"paper_size"`
	Priority      string            `dynamodbav:"priority"`
	MaxLeasePrice float64           `dynamodbav:"max_lease_price,omitempty"`
}

type customerActionItem struct {
	Action string `dynamodbav:"action"`
	At     string `dynamodbav:"at"`
	Note   string `dynamodbav:"note,omitempty"`
}

type quoteMetadataItem struct {
	ClampedScores []string `dynamodbav:"clamped_scores,omitempty"`
	Warnings      []string `dynamodbav:"warnings,omitempty"`
}

// Lifecycle and filter attributes (status, valid_until, the decision and
// metrics fields) are flattened to the top level so conditional updates and
// the expiry scan avoid nested document paths.
type quoteItem struct {
	ID             string `dynamodbav:"id"`
	QuoteRequestID string `dynamodbav:"quote_request_id"`
	RankKey        string `dynamodbav:"rank_key"`
	VendorID       string `dynamodbav:"vendor_id"`
	ProductID      string `dynamodbav:"product_id"`
	Ranking        int    `dynamodbav:"ranking"`

	MatchScore       matchScoreItem       `dynamodbav:"match_score"`
	Costs            quoteCostsItem       `dynamodbav:"costs"`
	UserRequirements userRequirementsItem `dynamodbav:"user_requirements"`
	LeaseOptions     []leaseOptionItem    `dynamodbav:"lease_options"`
	Terms            quoteTermsItem       `dynamodbav:"terms"`
	ProductSummary   productSummaryItem   `dynamodbav:"product_summary"`
	Metadata         quoteMetadataItem    `dynamodbav:"metadata"`

	Status          string               `dynamodbav:"status"`
	ValidUntil      string               `dynamodbav:"valid_until"`
	CustomerActions []customerActionItem `dynamodbav:"customer_actions"`
	AcceptedAt      string               `dynamodbav:"decision_accepted_at,omitempty"`
	RejectedAt      string               `dynamodbav:"decision_rejected_at,omitempty"`
	DecisionReason  string               `dynamodbav:"decision_reason,omitempty"`
	CreatedOrder    string               `dynamodbav:"created_order,omitempty"`

	ViewCount      int `dynamodbav:"view_count"`
	TimeToDecision int `dynamodbav:"time_to_decision_minutes,omitempty"`
	TimeToView     int `dynamodbav:"time_to_view_minutes,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_request_id-index (PK: quote_request_id)
//
// Create writes the quote together with a rank-lock item (id = "rank#" +
// rank_key) in one transaction, so a (quote_request, ranking) pair can be
// claimed exactly once even across concurrent retries. Lock items carry no
// quote_request_id and therefore never surface in the GSI.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func rankKey(quoteRequestID string, ranking int) string {
	return fmt.Sprintf("%s#%d", quoteRequestID, ranking)
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it := toQuoteItem(q)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	lock := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: "rank#" + it.RankKey},
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     av,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     lock,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return entities.Quote{}, fmt.Errorf("quote %s ranking %d: %w", q.ID, q.Ranking, interfaces.ErrRankingConflict)
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByQuoteRequestID(ctx context.Context, quoteRequestID string) ([]entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesRequestIDIndex),
		KeyConditionExpression: aws.String("quote_request_id = :qrid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qrid": &types.AttributeValueMemberS{Value: quoteRequestID},
		},
	})
	if err != nil {
		return nil, err
	}

	quotes := make([]entities.Quote, 0, len(out.Items))
	for _, raw := range out.Items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		quotes = append(quotes, fromQuoteItem(it))
	}
	return quotes, nil
}

func (r *QuoteDynamoRepository) MarkAccepted(ctx context.Context, id string, at time.Time, orderID string) (entities.Quote, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if current.ID == "" {
		return entities.Quote{}, nil
	}
	minutes := minutesBetween(current.CreatedAt, at)

	return r.update(ctx, id, openForDecisionCondition,
		func() (string, map[string]types.AttributeValue, map[string]string) {
			expr := "SET #status = :status, #accepted_at = :at, #created_order = :order, " +
				"#time_to_decision = :minutes, #updated_at = :updated_at, " +
				"#actions = list_append(if_not_exists(#actions, :empty), :action)"
			vals := map[string]types.AttributeValue{
				":status":  &types.AttributeValueMemberS{Value: string(entities.QuoteStatusAccepted)},
				":at":      &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339Nano)},
				":order":   &types.AttributeValueMemberS{Value: orderID},
				":minutes": &types.AttributeValueMemberN{Value: strconv.Itoa(minutes)},
				":action":  actionListValue("accepted", at, ""),
				":empty":   &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			}
			names := map[string]string{
				"#status":           "status",
				"#accepted_at":      "decision_accepted_at",
				"#created_order":    "created_order",
				"#time_to_decision": "time_to_decision_minutes",
				"#actions":          "customer_actions",
			}
			return expr, vals, names
		})
}

func (r *QuoteDynamoRepository) MarkRejected(ctx context.Context, id string, at time.Time, reason string) (entities.Quote, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if current.ID == "" {
		return entities.Quote{}, nil
	}
	minutes := minutesBetween(current.CreatedAt, at)

	return r.update(ctx, id, openForDecisionCondition,
		func() (string, map[string]types.AttributeValue, map[string]string) {
			expr := "SET #status = :status, #rejected_at = :at, #reason = :reason, " +
				"#time_to_decision = :minutes, #updated_at = :updated_at, " +
				"#actions = list_append(if_not_exists(#actions, :empty), :action)"
			vals := map[string]types.AttributeValue{
				":status":  &types.AttributeValueMemberS{Value: string(entities.QuoteStatusRejected)},
				":at":      &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339Nano)},
				":reason":  &types.AttributeValueMemberS{Value: reason},
				":minutes": &types.AttributeValueMemberN{Value: strconv.Itoa(minutes)},
				":action":  actionListValue("rejected", at, reason),
				":empty":   &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			}
			names := map[string]string{
				"#status":           "status",
				"#rejected_at":      "decision_rejected_at",
				"#reason":           "decision_reason",
				"#time_to_decision": "time_to_decision_minutes",
				"#actions":          "customer_actions",
			}
			return expr, vals, names
		})
}

func (r *QuoteDynamoRepository) MarkViewed(ctx context.Context, id string, at time.Time, timeToViewMinutes int) (entities.Quote, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if current.ID == "" {
		return entities.Quote{}, nil
	}

	advance := current.Status == entities.QuoteStatusGenerated || current.Status == entities.QuoteStatusSent

	return r.update(ctx, id, "attribute_exists(#id)",
		func() (string, map[string]types.AttributeValue, map[string]string) {
			expr := "SET #view_count = if_not_exists(#view_count, :zero) + :one, #updated_at = :updated_at, " +
				"#actions = list_append(if_not_exists(#actions, :empty), :action)"
			vals := map[string]types.AttributeValue{
				":zero":   &types.AttributeValueMemberN{Value: "0"},
				":one":    &types.AttributeValueMemberN{Value: "1"},
				":action": actionListValue("viewed", at, ""),
				":empty":  &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			}
			names := map[string]string{
				"#view_count": "view_count",
				"#actions":    "customer_actions",
			}
			if advance {
				expr += ", #status = :status"
				vals[":status"] = &types.AttributeValueMemberS{Value: string(entities.QuoteStatusViewed)}
				names["#status"] = "status"
			}
			if timeToViewMinutes > 0 {
				expr += ", #time_to_view = if_not_exists(#time_to_view, :ttv)"
				vals[":ttv"] = &types.AttributeValueMemberN{Value: strconv.Itoa(timeToViewMinutes)}
				names["#time_to_view"] = "time_to_view_minutes"
			}
			return expr, vals, names
		})
}

func (r *QuoteDynamoRepository) MarkExpired(ctx context.Context, id string, at time.Time) (entities.Quote, error) {
	return r.update(ctx, id, openForDecisionCondition,
		func() (string, map[string]types.AttributeValue, map[string]string) {
			expr := "SET #status = :status, #updated_at = :updated_at"
			vals := map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusExpired)},
			}
			names := map[string]string{
				"#status": "status",
			}
			return expr, vals, names
		})
}

func (r *QuoteDynamoRepository) ListOpenBefore(ctx context.Context, before time.Time) ([]entities.Quote, error) {
	filter := "attribute_exists(quote_request_id) AND valid_until < :before AND #status IN (:generated, :sent, :viewed, :contacted)"
	values := map[string]types.AttributeValue{
		":before":    &types.AttributeValueMemberS{Value: before.UTC().Format(time.RFC3339Nano)},
		":generated": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusGenerated)},
		":sent":      &types.AttributeValueMemberS{Value: string(entities.QuoteStatusSent)},
		":viewed":    &types.AttributeValueMemberS{Value: string(entities.QuoteStatusViewed)},
		":contacted": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusContacted)},
	}

	var (
		quotes   []entities.Quote
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          aws.String(filter),
			ExpressionAttributeValues: values,
			ExpressionAttributeNames:  map[string]string{"#status": "status"},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			quotes = append(quotes, fromQuoteItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return quotes, nil
}

// openForDecisionCondition guards decisions and expiry: the quote must exist,
// must not have been accepted already and must still be in a pre-decision
// status.
const openForDecisionCondition = "attribute_exists(#id) AND attribute_not_exists(#accepted_guard) AND #status_guard IN (:s_generated, :s_sent, :s_viewed, :s_contacted)"

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	condition string,
	build func() (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
	updateExpr, values, names := build()

	values[":updated_at"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)}
	names["#updated_at"] = "updated_at"
	names["#id"] = "id"
	if condition == openForDecisionCondition {
		names["#accepted_guard"] = "decision_accepted_at"
		names["#status_guard"] = "status"
		values[":s_generated"] = &types.AttributeValueMemberS{Value: string(entities.QuoteStatusGenerated)}
		values[":s_sent"] = &types.AttributeValueMemberS{Value: string(entities.QuoteStatusSent)}
		values[":s_viewed"] = &types.AttributeValueMemberS{Value: string(entities.QuoteStatusViewed)}
		values[":s_contacted"] = &types.AttributeValueMemberS{Value: string(entities.QuoteStatusContacted)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func actionListValue(action string, at time.Time, note string) types.AttributeValue {
	entry := map[string]types.AttributeValue{
		"action": &types.AttributeValueMemberS{Value: action},
		"at":     &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339Nano)},
	}
	if note != "" {
		entry["note"] = &types.AttributeValueMemberS{Value: note}
	}
	return &types.AttributeValueMemberL{Value: []types.AttributeValue{
		&types.AttributeValueMemberM{Value: entry},
	}}
}

func minutesBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return int(d.Minutes())
}

func toQuoteItem(q entities.Quote) quoteItem {
	actions := make([]customerActionItem, 0, len(q.CustomerActions))
	for _, a := range q.CustomerActions {
		actions = append(actions, customerActionItem{
			Action: a.Action,
			At:     a.At.UTC().Format(time.RFC3339Nano),
			Note:   a.Note,
		})
	}

	opts := make([]leaseOptionItem, 0, len(q.LeaseOptions))
	for _, o := range q.LeaseOptions {
		opts = append(opts, leaseOptionItem{
			TermMonths:       o.TermMonths,
			QuarterlyPayment: o.QuarterlyPayment,
			MonthlyPayment:   o.MonthlyPayment,
			TotalCost:        o.TotalCost,
			Margin:           o.Margin,
			IsRecommended:    o.IsRecommended,
		})
	}

	supported := make([]string, 0, len(q.ProductSummary.PaperSizes.Supported))
	for _, s := range q.ProductSummary.PaperSizes.Supported {
		supported = append(supported, string(s))
	}
	if len(supported) == 0 {
		supported = nil
	}

	validUntil := q.Terms.ValidUntil.UTC().Format(time.RFC3339Nano)

	return quoteItem{
		ID:             q.ID,
		QuoteRequestID: q.QuoteRequestID,
		RankKey:        rankKey(q.QuoteRequestID, q.Ranking),
		VendorID:       q.VendorID,
		ProductID:      q.ProductID,
		Ranking:        q.Ranking,
		MatchScore: matchScoreItem{
			Total:      q.MatchScore.Total,
			Confidence: string(q.MatchScore.Confidence),
			Breakdown: scoreBreakdownItem{
				VolumeMatch:      q.MatchScore.Breakdown.VolumeMatch,
				CostEfficiency:   q.MatchScore.Breakdown.CostEfficiency,
				SpeedMatch:       q.MatchScore.Breakdown.SpeedMatch,
				FeatureMatch:     q.MatchScore.Breakdown.FeatureMatch,
				ReliabilityMatch: q.MatchScore.Breakdown.ReliabilityMatch,
				PaperSizeMatch:   q.MatchScore.Breakdown.PaperSizeMatch,
				UrgencyMatch:     q.MatchScore.Breakdown.UrgencyMatch,
			},
			Reasoning: q.MatchScore.Reasoning,
		},
		Costs: quoteCostsItem{
			MonoRate:         q.Costs.MonoRate,
			ColourRate:       q.Costs.ColourRate,
			MonoCPCCost:      q.Costs.MonoCPCCost,
			ColourCPCCost:    q.Costs.ColourCPCCost,
			TotalCPCCost:     q.Costs.TotalCPCCost,
			MonthlyLease:     q.Costs.MonthlyLease,
			MonthlyService:   q.Costs.MonthlyService,
			TotalMonthlyCost: q.Costs.TotalMonthlyCost,
			Savings: savingsItem{
				MonthlyAmount:   q.Costs.Savings.MonthlyAmount,
				AnnualAmount:    q.Costs.Savings.AnnualAmount,
				PercentageSaved: q.Costs.Savings.PercentageSaved,
				CurrentMonthly:  q.Costs.Savings.CurrentMonthly,
			},
		},
		UserRequirements: userRequirementsItem{
			MonthlyVolume: monthlyVolumeItem{
				Mono:   q.UserRequirements.MonthlyVolume.Mono,
				Colour: q.UserRequirements.MonthlyVolume.Colour,
				Total:  q.UserRequirements.MonthlyVolume.Total,
			},
			PaperSize:     string(q.UserRequirements.PaperSize),
			Priority:      string(q.UserRequirements.Priority),
			MaxLeasePrice: q.UserRequirements.MaxLeasePrice,
		},
		LeaseOptions: opts,
		Terms: quoteTermsItem{
			ValidUntil:         validUntil,
			DeliveryTime:       q.Terms.DeliveryTime,
			InstallationTime:   q.Terms.InstallationTime,
			PaymentTerms:       q.Terms.PaymentTerms,
			CancellationPolicy: q.Terms.CancellationPolicy,
		},
		ProductSummary: productSummaryItem{
			Manufacturer:   q.ProductSummary.Manufacturer,
			Model:          q.ProductSummary.Model,
			Speed:          q.ProductSummary.Speed,
			Features:       q.ProductSummary.Features,
			PaperPrimary:   string(q.ProductSummary.PaperSizes.Primary),
			PaperSupported: supported,
			VolumeRange:    string(q.ProductSummary.VolumeRange),
		},
		Metadata: quoteMetadataItem{
			ClampedScores: q.Metadata.ClampedScores,
			Warnings:      q.Metadata.Warnings,
		},
		Status:          string(q.Status),
		ValidUntil:      validUntil,
		CustomerActions: actions,
		AcceptedAt:      formatOptionalTime(q.DecisionDetails.AcceptedAt),
		RejectedAt:      formatOptionalTime(q.DecisionDetails.RejectedAt),
		DecisionReason:  q.DecisionDetails.Reason,
		CreatedOrder:    q.CreatedOrder,
		ViewCount:       q.Metrics.ViewCount,
		TimeToDecision:  q.Metrics.TimeToDecision,
		TimeToView:      q.Metrics.TimeToView,
		CreatedAt:       q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	validUntil, _ := time.Parse(time.RFC3339Nano, it.Terms.ValidUntil)

	actions := make([]entities.CustomerAction, 0, len(it.CustomerActions))
	for _, a := range it.CustomerActions {
		at, _ := time.Parse(time.RFC3339Nano, a.At)
		actions = append(actions, entities.CustomerAction{Action: a.Action, At: at, Note: a.Note})
	}

	opts := make([]entities.LeaseOption, 0, len(it.LeaseOptions))
	for _, o := range it.LeaseOptions {
		opts = append(opts, entities.LeaseOption{
			TermMonths:       o.TermMonths,
			QuarterlyPayment: o.QuarterlyPayment,
			MonthlyPayment:   o.MonthlyPayment,
			TotalCost:        o.TotalCost,
			Margin:           o.Margin,
			IsRecommended:    o.IsRecommended,
		})
	}

	supported := make([]entities.PaperSize, 0, len(it.ProductSummary.PaperSupported))
	for _, s := range it.ProductSummary.PaperSupported {
		supported = append(supported, entities.PaperSize(s))
	}
	if len(supported) == 0 {
		supported = nil
	}

	return entities.Quote{
		ID:             it.ID,
		QuoteRequestID: it.QuoteRequestID,
		VendorID:       it.VendorID,
		ProductID:      it.ProductID,
		Ranking:        it.Ranking,
		MatchScore: entities.MatchScore{
			Total:      it.MatchScore.Total,
			Confidence: entities.Confidence(it.MatchScore.Confidence),
			Breakdown: entities.ScoreBreakdown{
				VolumeMatch:      it.MatchScore.Breakdown.VolumeMatch,
				CostEfficiency:   it.MatchScore.Breakdown.CostEfficiency,
				SpeedMatch:       it.MatchScore.Breakdown.SpeedMatch,
				FeatureMatch:     it.MatchScore.Breakdown.FeatureMatch,
				ReliabilityMatch: it.MatchScore.Breakdown.ReliabilityMatch,
				PaperSizeMatch:   it.MatchScore.Breakdown.PaperSizeMatch,
				UrgencyMatch:     it.MatchScore.Breakdown.UrgencyMatch,
			},
			Reasoning: it.MatchScore.Reasoning,
		},
		Costs: entities.QuoteCosts{
			MonoRate:         it.Costs.MonoRate,
			ColourRate:       it.Costs.ColourRate,
			MonoCPCCost:      it.Costs.MonoCPCCost,
			ColourCPCCost:    it.Costs.ColourCPCCost,
			TotalCPCCost:     it.Costs.TotalCPCCost,
			MonthlyLease:     it.Costs.MonthlyLease,
			MonthlyService:   it.Costs.MonthlyService,
			TotalMonthlyCost: it.Costs.TotalMonthlyCost,
			Savings: entities.Savings{
				MonthlyAmount:   it.Costs.Savings.MonthlyAmount,
				AnnualAmount:    it.Costs.Savings.AnnualAmount,
				PercentageSaved: it.Costs.Savings.PercentageSaved,
				CurrentMonthly:  it.Costs.Savings.CurrentMonthly,
			},
		},
		UserRequirements: entities.UserRequirements{
			MonthlyVolume: entities.MonthlyVolume{
				Mono:   it.UserRequirements.MonthlyVolume.Mono,
				Colour: it.UserRequirements.MonthlyVolume.Colour,
				Total:  it.UserRequirements.MonthlyVolume.Total,
			},
			PaperSize:     entities.PaperSize(it.UserRequirements.PaperSize),
			Priority:      entities.Priority(it.UserRequirements.Priority),
			MaxLeasePrice: it.UserRequirements.MaxLeasePrice,
		},
		LeaseOptions: opts,
		Terms: entities.QuoteTerms{
			ValidUntil:         validUntil,
			DeliveryTime:       it.Terms.DeliveryTime,
			InstallationTime:   it.Terms.InstallationTime,
			PaymentTerms:       it.Terms.PaymentTerms,
			CancellationPolicy: it.Terms.CancellationPolicy,
		},
		ProductSummary: entities.ProductSummary{
			Manufacturer: it.ProductSummary.Manufacturer,
			Model:        it.ProductSummary.Model,
			Speed:        it.ProductSummary.Speed,
			Features:     it.ProductSummary.Features,
			PaperSizes: entities.PaperSizes{
				Primary:   entities.PaperSize(it.ProductSummary.PaperPrimary),
				Supported: supported,
			},
			VolumeRange: entities.VolumeRange(it.ProductSummary.VolumeRange),
		},
		Status:          entities.QuoteStatus(it.Status),
		CustomerActions: actions,
		DecisionDetails: entities.DecisionDetails{
			AcceptedAt: parseOptionalTime(it.AcceptedAt),
			RejectedAt: parseOptionalTime(it.RejectedAt),
			Reason:     it.DecisionReason,
		},
		Metrics: entities.QuoteMetrics{
			ViewCount:      it.ViewCount,
			TimeToDecision: it.TimeToDecision,
			TimeToView:     it.TimeToView,
		},
		Metadata: entities.QuoteMetadata{
			ClampedScores: it.Metadata.ClampedScores,
			Warnings:      it.Metadata.Warnings,
		},
		CreatedOrder: it.CreatedOrder,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
