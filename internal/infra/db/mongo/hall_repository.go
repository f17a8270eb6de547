package mongo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hajez/internal/domain/halls"
)

type HallRepository struct {
	col *mongo.Collection
}

func NewHallRepository(db *mongo.Database) *HallRepository {
	return &HallRepository{col: db.Collection("halls")}
}

func (r *HallRepository) ByID(ctx context.Context, id halls.HallID) (*halls.Hall, error) {
	return r.findOne(ctx, bson.M{"_id": string(id)})
}

func (r *HallRepository) BySlug(ctx context.Context, slug string) (*halls.Hall, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *HallRepository) List(ctx context.Context) ([]*halls.Hall, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*halls.Hall
	for cur.Next(ctx) {
		var doc hallDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		hall, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, hall)
	}
	return out, cur.Err()
}

func (r *HallRepository) Save(ctx context.Context, hall *halls.Hall) error {
	doc := newHallDocument(hall)
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

func (r *HallRepository) findOne(ctx context.Context, filter bson.M) (*halls.Hall, error) {
	var doc hallDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, halls.ErrHallNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

type hallDocument struct {
	ID         string `bson:"_id"`
	Name       string `bson:"name"`
	Slug       string `bson:"slug"`
	ThemeColor string `bson:"theme_color,omitempty"`
	BasePrice  string `bson:"base_price"`
}

func newHallDocument(h *halls.Hall) hallDocument {
	return hallDocument{
		ID:         string(h.ID),
		Name:       h.Name,
		Slug:       h.Slug,
		ThemeColor: h.ThemeColor,
		BasePrice:  h.BasePrice.String(),
	}
}

func (d hallDocument) toAggregate() (*halls.Hall, error) {
	base, err := decimal.NewFromString(d.BasePrice)
	if err != nil {
		return nil, err
	}
	return &halls.Hall{
		ID:         halls.HallID(d.ID),
		Name:       d.Name,
		Slug:       d.Slug,
		ThemeColor: d.ThemeColor,
		BasePrice:  base,
	}, nil
}
