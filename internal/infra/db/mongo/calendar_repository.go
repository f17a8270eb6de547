package mongo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hajez/internal/domain/calendar"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

// DayRepository stores per-day calendar records. Only days that deviate from
// plain availability get a document.
type DayRepository struct {
	col *mongo.Collection
}

func NewDayRepository(db *mongo.Database) *DayRepository {
	return &DayRepository{col: db.Collection("calendar_days")}
}

// EnsureIndexes creates the (hall_id, date) uniqueness index. Call once at startup.
func (r *DayRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hall_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *DayRepository) DaysInRange(ctx context.Context, hallID halls.HallID, from, to time.Time) ([]calendar.Day, error) {
	filter := bson.M{
		"hall_id": string(hallID),
		"date": bson.M{
			"$gte": pricing.Midnight(from).UnixMilli(),
			"$lte": pricing.Midnight(to).UnixMilli(),
		},
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []calendar.Day
	for cur.Next(ctx) {
		var doc dayDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		day, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, cur.Err()
}

func (r *DayRepository) UpsertDay(ctx context.Context, day calendar.Day) error {
	doc := newDayDocument(day)
	_, err := r.col.UpdateOne(ctx,
		bson.M{"hall_id": doc.HallID, "date": doc.Date},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

type dayDocument struct {
	ID          string `bson:"_id"`
	HallID      string `bson:"hall_id"`
	Date        int64  `bson:"date"`
	Status      string `bson:"status"`
	ManualPrice string `bson:"manual_price,omitempty"`
}

func newDayDocument(day calendar.Day) dayDocument {
	doc := dayDocument{
		ID:     day.ID,
		HallID: string(day.HallID),
		Date:   pricing.Midnight(day.Date).UnixMilli(),
		Status: string(day.Status),
	}
	if day.ManualPrice != nil {
		doc.ManualPrice = day.ManualPrice.String()
	}
	return doc
}

func (d dayDocument) toDomain() (calendar.Day, error) {
	day := calendar.Day{
		ID:     d.ID,
		HallID: halls.HallID(d.HallID),
		Date:   timestampToTime(d.Date),
		Status: calendar.DayStatus(d.Status),
	}
	if d.ManualPrice != "" {
		price, err := decimal.NewFromString(d.ManualPrice)
		if err != nil {
			return calendar.Day{}, err
		}
		day.ManualPrice = &price
	}
	return day, nil
}
