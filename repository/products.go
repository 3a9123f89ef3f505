package repository

import (
	"context"
	"strings"

	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/models"
	"github.com/pedaler/pedalerbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Products struct {
	col database.Collection
}

func NewProducts(col database.Collection) *Products {
	return &Products{col: col}
}

func (p *Products) List(ctx context.Context) ([]models.Document, error) {
	docs, err := p.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeError("products.List", err)
	}
	return docs, nil
}

func (p *Products) ListByCategory(ctx context.Context, category string) ([]models.Document, error) {
	const op = "products.ListByCategory"
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperror.Invalidf(op, "category is required")
	}
	docs, err := p.col.Find(ctx, bson.M{models.FieldCategory: category})
	if err != nil {
		return nil, storeError(op, err)
	}
	return docs, nil
}

func (p *Products) Get(ctx context.Context, id string) (models.Document, error) {
	const op = "products.Get"
	oid, err := ParseID(op, id)
	if err != nil {
		return nil, err
	}
	doc, err := p.col.FindOne(ctx, byID(oid))
	if err != nil {
		if database.IsNoDocuments(err) {
			return nil, apperror.NotFoundf(op, "product %s not found", oid.Hex())
		}
		return nil, storeError(op, err)
	}
	return doc, nil
}

// Create stores the product as submitted. A slug is derived from the name
// when the caller did not send one.
func (p *Products) Create(ctx context.Context, fields models.Document) (models.InsertResult, error) {
	const op = "products.Create"
	doc, err := sanitize(op, fields)
	if err != nil {
		return models.InsertResult{}, err
	}
	if _, ok := doc[models.FieldSlug]; !ok {
		if name, ok := doc[models.FieldName].(string); ok {
			if slug := utils.GenerateSlug(name); slug != "" {
				doc[models.FieldSlug] = slug
			}
		}
	}

	res, err := p.col.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, storeError(op, err)
	}
	return res, nil
}

// Update merges partial into the product; fields it does not name are kept.
func (p *Products) Update(ctx context.Context, id string, partial models.Document) (models.UpdateResult, error) {
	const op = "products.Update"
	oid, err := ParseID(op, id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	set, err := sanitize(op, partial)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if len(set) == 0 {
		return models.UpdateResult{}, apperror.Invalidf(op, "no updates provided")
	}

	res, err := p.col.UpdateOne(ctx, byID(oid), set, false)
	if err != nil {
		return models.UpdateResult{}, storeError(op, err)
	}
	return res, nil
}

func (p *Products) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	const op = "products.Delete"
	oid, err := ParseID(op, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := p.col.DeleteOne(ctx, byID(oid))
	if err != nil {
		return models.DeleteResult{}, storeError(op, err)
	}
	return res, nil
}
