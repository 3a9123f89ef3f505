package repository

import (
	"context"
	"errors"

	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var errStoreDown = errors.New("server selection timeout")

// countingCollection records how many calls reach the wrapped collection.
type countingCollection struct {
	database.Collection
	calls int
}

func newCounting() *countingCollection {
	return &countingCollection{Collection: database.NewMemoryCollection()}
}

func (c *countingCollection) Find(ctx context.Context, filter bson.M) ([]models.Document, error) {
	c.calls++
	return c.Collection.Find(ctx, filter)
}

func (c *countingCollection) FindOne(ctx context.Context, filter bson.M) (models.Document, error) {
	c.calls++
	return c.Collection.FindOne(ctx, filter)
}

func (c *countingCollection) InsertOne(ctx context.Context, doc models.Document) (models.InsertResult, error) {
	c.calls++
	return c.Collection.InsertOne(ctx, doc)
}

func (c *countingCollection) UpdateOne(ctx context.Context, filter bson.M, set models.Document, upsert bool) (models.UpdateResult, error) {
	c.calls++
	return c.Collection.UpdateOne(ctx, filter, set, upsert)
}

func (c *countingCollection) DeleteOne(ctx context.Context, filter bson.M) (models.DeleteResult, error) {
	c.calls++
	return c.Collection.DeleteOne(ctx, filter)
}

// failingCollection fails every call with err.
type failingCollection struct {
	err error
}

func (f failingCollection) Find(context.Context, bson.M) ([]models.Document, error) {
	return nil, f.err
}

func (f failingCollection) FindOne(context.Context, bson.M) (models.Document, error) {
	return nil, f.err
}

func (f failingCollection) InsertOne(context.Context, models.Document) (models.InsertResult, error) {
	return models.InsertResult{}, f.err
}

func (f failingCollection) UpdateOne(context.Context, bson.M, models.Document, bool) (models.UpdateResult, error) {
	return models.UpdateResult{}, f.err
}

func (f failingCollection) DeleteOne(context.Context, bson.M) (models.DeleteResult, error) {
	return models.DeleteResult{}, f.err
}
