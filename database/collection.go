package database

import (
	"context"
	"errors"

	"github.com/pedaler/pedalerbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ErrNoDocuments is returned by FindOne when nothing matches the filter.
var ErrNoDocuments = mongo.ErrNoDocuments

// Collection is the subset of collection operations the API needs. Filters
// are equality matches on top-level fields and updates are $set merges.
type Collection interface {
	Find(ctx context.Context, filter bson.M) ([]models.Document, error)
	FindOne(ctx context.Context, filter bson.M) (models.Document, error)
	InsertOne(ctx context.Context, doc models.Document) (models.InsertResult, error)
	UpdateOne(ctx context.Context, filter bson.M, set models.Document, upsert bool) (models.UpdateResult, error)
	DeleteOne(ctx context.Context, filter bson.M) (models.DeleteResult, error)
}

// Store holds the four collections the API serves. It is built once at
// startup and handed to the routes.
type Store struct {
	Products Collection
	Orders   Collection
	Reviews  Collection
	Users    Collection

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// IsNoDocuments reports whether err means the lookup matched nothing.
func IsNoDocuments(err error) bool {
	return errors.Is(err, ErrNoDocuments)
}
