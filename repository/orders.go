package repository

import (
	"context"
	"math"
	"strings"

	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Orders struct {
	col database.Collection
}

func NewOrders(col database.Collection) *Orders {
	return &Orders{col: col}
}

// Create validates userEmail and price and defaults status to Pending.
func (o *Orders) Create(ctx context.Context, fields models.Document) (models.InsertResult, error) {
	const op = "orders.Create"
	doc, err := sanitize(op, fields)
	if err != nil {
		return models.InsertResult{}, err
	}

	email, _ := doc[models.FieldUserEmail].(string)
	email, err = requireEmail(op, email)
	if err != nil {
		return models.InsertResult{}, err
	}
	doc[models.FieldUserEmail] = email

	raw, ok := doc[models.FieldPrice]
	if !ok {
		return models.InsertResult{}, apperror.Invalidf(op, "price is required")
	}
	price, ok := toFloat(raw)
	if !ok || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return models.InsertResult{}, apperror.Invalidf(op, "price must be a non-negative number")
	}

	switch s := doc[models.FieldStatus].(type) {
	case nil:
		doc[models.FieldStatus] = string(models.OrderStatusPending)
	case string:
		if !models.OrderStatus(s).Valid() {
			return models.InsertResult{}, apperror.Invalidf(op, "status must be %q or %q", models.OrderStatusPending, models.OrderStatusPaid)
		}
	default:
		return models.InsertResult{}, apperror.Invalidf(op, "status must be a string")
	}

	res, err := o.col.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, storeError(op, err)
	}
	return res, nil
}

func (o *Orders) ListAll(ctx context.Context) ([]models.Document, error) {
	docs, err := o.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeError("orders.ListAll", err)
	}
	return docs, nil
}

func (o *Orders) ListByUser(ctx context.Context, email string) ([]models.Document, error) {
	const op = "orders.ListByUser"
	email, err := requireEmail(op, email)
	if err != nil {
		return nil, err
	}
	docs, err := o.col.Find(ctx, bson.M{models.FieldUserEmail: email})
	if err != nil {
		return nil, storeError(op, err)
	}
	return docs, nil
}

func (o *Orders) Get(ctx context.Context, id string) (models.Document, error) {
	const op = "orders.Get"
	oid, err := ParseID(op, id)
	if err != nil {
		return nil, err
	}
	doc, err := o.col.FindOne(ctx, byID(oid))
	if err != nil {
		if database.IsNoDocuments(err) {
			return nil, apperror.NotFoundf(op, "order %s not found", oid.Hex())
		}
		return nil, storeError(op, err)
	}
	return doc, nil
}

func (o *Orders) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	const op = "orders.Delete"
	oid, err := ParseID(op, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := o.col.DeleteOne(ctx, byID(oid))
	if err != nil {
		return models.DeleteResult{}, storeError(op, err)
	}
	return res, nil
}

// MarkPaid records the transaction and flips the order to Paid. It trusts
// the caller to have confirmed the payment with the provider.
func (o *Orders) MarkPaid(ctx context.Context, id, transactionID string) (models.UpdateResult, error) {
	const op = "orders.MarkPaid"
	oid, err := ParseID(op, id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return models.UpdateResult{}, apperror.Invalidf(op, "transactionId is required")
	}

	res, err := o.col.UpdateOne(ctx, byID(oid), models.Document{
		models.FieldStatus:        string(models.OrderStatusPaid),
		models.FieldTransactionID: transactionID,
	}, false)
	if err != nil {
		return models.UpdateResult{}, storeError(op, err)
	}
	return res, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
