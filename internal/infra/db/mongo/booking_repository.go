package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "hajez/internal/domain/booking"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *BookingRepository) ByHallInRange(ctx context.Context, hallID halls.HallID, from, to time.Time) ([]*domainbooking.Booking, error) {
	filter := bson.M{
		"hall_id": string(hallID),
		"event_date": bson.M{
			"$gte": pricing.Midnight(from).UnixMilli(),
			"$lte": pricing.Midnight(to).UnixMilli(),
		},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		b, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}

// Save writes with optimistic concurrency: the filter pins the version the
// aggregate was loaded at, so a racing writer loses with ErrConcurrentUpdate.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

type bookingDocument struct {
	ID                 string            `bson:"_id"`
	HallID             string            `bson:"hall_id"`
	ClientID           string            `bson:"client_id"`
	EventDate          int64             `bson:"event_date"`
	Price              breakdownDocument `bson:"price"`
	Status             string            `bson:"status"`
	Financial          string            `bson:"financial"`
	DepositPercentage  int               `bson:"deposit_percentage"`
	Payments           []paymentDocument `bson:"payments,omitempty"`
	Notes              string            `bson:"notes,omitempty"`
	CancellationReason string            `bson:"cancellation_reason,omitempty"`
	CreatedBy          string            `bson:"created_by,omitempty"`
	CreatedAt          int64             `bson:"created_at"`
	UpdatedAt          int64             `bson:"updated_at"`
	Version            int64             `bson:"version"`
}

type paymentDocument struct {
	ID          string `bson:"id"`
	Amount      string `bson:"amount"`
	Method      string `bson:"method"`
	Category    string `bson:"category"`
	ReferenceNo string `bson:"reference_no,omitempty"`
	Notes       string `bson:"notes,omitempty"`
	PaidAt      int64  `bson:"paid_at"`
}

// breakdownDocument snapshots the resolved price at request time. Only the
// identifiers and amounts needed to explain the charge are kept.
type breakdownDocument struct {
	BasePrice  string             `bson:"base_price"`
	FinalPrice string             `bson:"final_price"`
	Rule       *ruleDocument      `bson:"rule,omitempty"`
	Override   *overrideDocument  `bson:"override,omitempty"`
	Discounts  []discountDocument `bson:"discounts,omitempty"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	doc := bookingDocument{
		ID:                 string(b.ID),
		HallID:             string(b.HallID),
		ClientID:           b.ClientID,
		EventDate:          b.EventDate.UnixMilli(),
		Price:              newBreakdownDocument(b.Price),
		Status:             string(b.Status),
		Financial:          string(b.Financial),
		DepositPercentage:  b.DepositPercentage,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedBy:          b.CreatedBy,
		CreatedAt:          b.CreatedAt.UnixMilli(),
		UpdatedAt:          b.UpdatedAt.UnixMilli(),
		Version:            b.Version,
	}
	for _, p := range b.Payments {
		doc.Payments = append(doc.Payments, paymentDocument{
			ID:          p.ID,
			Amount:      p.Amount.String(),
			Method:      string(p.Method),
			Category:    string(p.Category),
			ReferenceNo: p.ReferenceNo,
			Notes:       p.Notes,
			PaidAt:      p.PaidAt.UnixMilli(),
		})
	}
	return doc
}

func (d bookingDocument) toAggregate() (*domainbooking.Booking, error) {
	price, err := d.Price.toDomain()
	if err != nil {
		return nil, err
	}
	b := &domainbooking.Booking{
		ID:                 domainbooking.BookingID(d.ID),
		HallID:             halls.HallID(d.HallID),
		ClientID:           d.ClientID,
		EventDate:          timestampToTime(d.EventDate),
		Price:              price,
		Status:             domainbooking.Status(d.Status),
		Financial:          domainbooking.FinancialStatus(d.Financial),
		DepositPercentage:  d.DepositPercentage,
		Notes:              d.Notes,
		CancellationReason: d.CancellationReason,
		CreatedBy:          d.CreatedBy,
		CreatedAt:          timestampToTime(d.CreatedAt),
		UpdatedAt:          timestampToTime(d.UpdatedAt),
		Version:            d.Version,
	}
	for _, p := range d.Payments {
		amount, err := decimal.NewFromString(p.Amount)
		if err != nil {
			return nil, err
		}
		b.Payments = append(b.Payments, domainbooking.Payment{
			ID:          p.ID,
			Amount:      amount,
			Method:      domainbooking.PaymentMethod(p.Method),
			Category:    domainbooking.PaymentCategory(p.Category),
			ReferenceNo: p.ReferenceNo,
			Notes:       p.Notes,
			PaidAt:      timestampToTime(p.PaidAt),
		})
	}
	return b, nil
}

func newBreakdownDocument(pb pricing.PriceBreakdown) breakdownDocument {
	doc := breakdownDocument{
		BasePrice:  pb.BasePrice.String(),
		FinalPrice: pb.FinalPrice.String(),
	}
	if pb.AppliedRule != nil {
		rule := newRuleDocument(*pb.AppliedRule)
		doc.Rule = &rule
	}
	if pb.AppliedOverride != nil {
		ov := newOverrideDocument(*pb.AppliedOverride)
		doc.Override = &ov
	}
	for _, disc := range pb.AppliedDiscounts {
		doc.Discounts = append(doc.Discounts, newDiscountDocument(disc))
	}
	return doc
}

func (d breakdownDocument) toDomain() (pricing.PriceBreakdown, error) {
	base, err := decimal.NewFromString(d.BasePrice)
	if err != nil {
		return pricing.PriceBreakdown{}, err
	}
	final, err := decimal.NewFromString(d.FinalPrice)
	if err != nil {
		return pricing.PriceBreakdown{}, err
	}
	pb := pricing.PriceBreakdown{
		BasePrice:        base,
		FinalPrice:       final,
		AppliedDiscounts: []pricing.Discount{},
	}
	if d.Rule != nil {
		rule, err := d.Rule.toDomain()
		if err != nil {
			return pricing.PriceBreakdown{}, err
		}
		pb.AppliedRule = &rule
	}
	if d.Override != nil {
		ov, err := d.Override.toDomain()
		if err != nil {
			return pricing.PriceBreakdown{}, err
		}
		pb.AppliedOverride = &ov
	}
	for _, disc := range d.Discounts {
		dd, err := disc.toDomain()
		if err != nil {
			return pricing.PriceBreakdown{}, err
		}
		pb.AppliedDiscounts = append(pb.AppliedDiscounts, dd)
	}
	return pb, nil
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
