package repository

import (
	"context"

	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Reviews are append-only.
type Reviews struct {
	col database.Collection
}

func NewReviews(col database.Collection) *Reviews {
	return &Reviews{col: col}
}

func (r *Reviews) Create(ctx context.Context, fields models.Document) (models.InsertResult, error) {
	const op = "reviews.Create"
	doc, err := sanitize(op, fields)
	if err != nil {
		return models.InsertResult{}, err
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, storeError(op, err)
	}
	return res, nil
}

func (r *Reviews) ListAll(ctx context.Context) ([]models.Document, error) {
	docs, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeError("reviews.ListAll", err)
	}
	return docs, nil
}
