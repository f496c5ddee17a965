package mongorepo

import (
	"context"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// resourceRepository stores owned records as documents keyed by their UUID.
type resourceRepository[T any, PT domain.ResourcePtr[T]] struct {
	coll *mongo.Collection
}

func NewResourceRepository[T any, PT domain.ResourcePtr[T]](coll *mongo.Collection) *resourceRepository[T, PT] {
	return &resourceRepository[T, PT]{coll: coll}
}

func (r *resourceRepository[T, PT]) Create(ctx context.Context, record *T) error {
	_, err := r.coll.InsertOne(ctx, record)
	return err
}

func (r *resourceRepository[T, PT]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *resourceRepository[T, PT]) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	records := make([]*T, 0)
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *resourceRepository[T, PT]) Update(ctx context.Context, record *T) error {
	id := PT(record).Ownership().ID
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, record)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *resourceRepository[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
