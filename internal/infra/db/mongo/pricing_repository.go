package mongo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hajez/internal/domain/pricing"
)

// PricingRepository keeps a hall's pricing configuration across three
// collections. Overrides carry a unique index on (hall_id, date) so a date
// can hold at most one pin; writing again replaces it.
type PricingRepository struct {
	rules     *mongo.Collection
	overrides *mongo.Collection
	discounts *mongo.Collection
}

func NewPricingRepository(db *mongo.Database) *PricingRepository {
	return &PricingRepository{
		rules:     db.Collection("pricing_rules"),
		overrides: db.Collection("pricing_overrides"),
		discounts: db.Collection("pricing_discounts"),
	}
}

// EnsureIndexes creates the uniqueness and lookup indexes. Call once at startup.
func (r *PricingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.overrides.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hall_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	for _, col := range []*mongo.Collection{r.rules, r.discounts} {
		_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "hall_id", Value: 1}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PricingRepository) RulesByHall(ctx context.Context, hallID string) ([]pricing.Rule, error) {
	cur, err := r.rules.Find(ctx, bson.M{"hall_id": hallID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []pricing.Rule
	for cur.Next(ctx) {
		var doc ruleDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		rule, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, cur.Err()
}

func (r *PricingRepository) OverridesInRange(ctx context.Context, hallID string, from, to time.Time) ([]pricing.Override, error) {
	filter := bson.M{
		"hall_id": hallID,
		"date": bson.M{
			"$gte": pricing.Midnight(from).UnixMilli(),
			"$lte": pricing.Midnight(to).UnixMilli(),
		},
	}
	cur, err := r.overrides.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []pricing.Override
	for cur.Next(ctx) {
		var doc overrideDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ov, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, ov)
	}
	return out, cur.Err()
}

func (r *PricingRepository) DiscountsByHall(ctx context.Context, hallID string) ([]pricing.Discount, error) {
	cur, err := r.discounts.Find(ctx, bson.M{"hall_id": hallID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []pricing.Discount
	for cur.Next(ctx) {
		var doc discountDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		d, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, cur.Err()
}

func (r *PricingRepository) SaveRule(ctx context.Context, rule pricing.Rule) error {
	doc := newRuleDocument(rule)
	_, err := r.rules.UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

func (r *PricingRepository) DeleteRule(ctx context.Context, hallID, ruleID string) error {
	res, err := r.rules.DeleteOne(ctx, bson.M{"_id": ruleID, "hall_id": hallID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return pricing.ErrRuleNotFound
	}
	return nil
}

func (r *PricingRepository) UpsertOverride(ctx context.Context, ov pricing.Override) error {
	doc := newOverrideDocument(ov)
	_, err := r.overrides.UpdateOne(ctx,
		bson.M{"hall_id": doc.HallID, "date": doc.Date},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

func (r *PricingRepository) DeleteOverride(ctx context.Context, hallID, overrideID string) error {
	res, err := r.overrides.DeleteOne(ctx, bson.M{"_id": overrideID, "hall_id": hallID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return pricing.ErrOverrideNotFound
	}
	return nil
}

func (r *PricingRepository) SaveDiscount(ctx context.Context, d pricing.Discount) error {
	doc := newDiscountDocument(d)
	_, err := r.discounts.UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

type ruleDocument struct {
	ID              string `bson:"_id"`
	HallID          string `bson:"hall_id"`
	Name            string `bson:"name"`
	Tier            int    `bson:"tier"`
	StartDate       int64  `bson:"start_date,omitempty"`
	EndDate         int64  `bson:"end_date,omitempty"`
	DaysOfWeek      []int  `bson:"days_of_week,omitempty"`
	AdjustmentKind  string `bson:"adjustment_kind"`
	AdjustmentValue string `bson:"adjustment_value"`
}

func newRuleDocument(rule pricing.Rule) ruleDocument {
	doc := ruleDocument{
		ID:              rule.ID,
		HallID:          rule.HallID,
		Name:            rule.Name,
		Tier:            int(rule.Tier),
		AdjustmentKind:  string(rule.AdjustmentKind),
		AdjustmentValue: rule.AdjustmentValue.String(),
	}
	if !rule.StartDate.IsZero() {
		doc.StartDate = pricing.Midnight(rule.StartDate).UnixMilli()
	}
	if !rule.EndDate.IsZero() {
		doc.EndDate = pricing.Midnight(rule.EndDate).UnixMilli()
	}
	for _, wd := range rule.DaysOfWeek {
		doc.DaysOfWeek = append(doc.DaysOfWeek, int(wd))
	}
	return doc
}

func (d ruleDocument) toDomain() (pricing.Rule, error) {
	value, err := decimal.NewFromString(d.AdjustmentValue)
	if err != nil {
		return pricing.Rule{}, err
	}
	rule := pricing.Rule{
		ID:              d.ID,
		HallID:          d.HallID,
		Name:            d.Name,
		Tier:            pricing.RuleTier(d.Tier),
		AdjustmentKind:  pricing.AdjustmentKind(d.AdjustmentKind),
		AdjustmentValue: value,
	}
	if d.StartDate != 0 {
		rule.StartDate = timestampToTime(d.StartDate)
	}
	if d.EndDate != 0 {
		rule.EndDate = timestampToTime(d.EndDate)
	}
	for _, wd := range d.DaysOfWeek {
		rule.DaysOfWeek = append(rule.DaysOfWeek, time.Weekday(wd))
	}
	return rule, nil
}

type overrideDocument struct {
	ID     string `bson:"_id"`
	HallID string `bson:"hall_id"`
	Date   int64  `bson:"date"`
	Price  string `bson:"price"`
}

func newOverrideDocument(ov pricing.Override) overrideDocument {
	return overrideDocument{
		ID:     ov.ID,
		HallID: ov.HallID,
		Date:   pricing.Midnight(ov.Date).UnixMilli(),
		Price:  ov.Price.String(),
	}
}

func (d overrideDocument) toDomain() (pricing.Override, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return pricing.Override{}, err
	}
	return pricing.Override{
		ID:     d.ID,
		HallID: d.HallID,
		Date:   timestampToTime(d.Date),
		Price:  price,
	}, nil
}

type discountDocument struct {
	ID             string `bson:"_id"`
	HallID         string `bson:"hall_id"`
	Name           string `bson:"name"`
	Kind           string `bson:"kind"`
	Value          string `bson:"value"`
	MinAdvanceDays int    `bson:"min_advance_days"`
	Active         bool   `bson:"active"`
}

func newDiscountDocument(d pricing.Discount) discountDocument {
	return discountDocument{
		ID:             d.ID,
		HallID:         d.HallID,
		Name:           d.Name,
		Kind:           string(d.Kind),
		Value:          d.Value.String(),
		MinAdvanceDays: d.MinAdvanceDays,
		Active:         d.Active,
	}
}

func (d discountDocument) toDomain() (pricing.Discount, error) {
	value, err := decimal.NewFromString(d.Value)
	if err != nil {
		return pricing.Discount{}, err
	}
	return pricing.Discount{
		ID:             d.ID,
		HallID:         d.HallID,
		Name:           d.Name,
		Kind:           pricing.DiscountKind(d.Kind),
		Value:          value,
		MinAdvanceDays: d.MinAdvanceDays,
		Active:         d.Active,
	}, nil
}
