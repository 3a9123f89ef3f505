// Package repository implements the per-collection operations the API
// exposes. Each operation is a single read or write against one collection.
package repository

import (
	"maps"
	"strings"

	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/models"
	"github.com/pedaler/pedalerbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParseID converts a hex identifier into an ObjectID. It runs before any
// store call so malformed ids never reach the database.
func ParseID(op, raw string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return bson.NilObjectID, apperror.Invalidf(op, "invalid id %q", raw)
	}
	return id, nil
}

// sanitize copies fields without the store-owned _id. Top-level names that
// MongoDB would read as operators or paths are rejected.
func sanitize(op string, fields models.Document) (models.Document, error) {
	for k := range fields {
		if k == "" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			return nil, apperror.Invalidf(op, "invalid field name %q", k)
		}
	}
	out := make(models.Document, len(fields))
	maps.Copy(out, fields)
	delete(out, models.FieldID)
	return out, nil
}

func requireEmail(op, email string) (string, error) {
	email = strings.TrimSpace(email)
	if !utils.IsEmail(email) {
		return "", apperror.Invalidf(op, "invalid email %q", email)
	}
	return email, nil
}

// storeError classifies a driver error.
func storeError(op string, err error) error {
	switch {
	case database.IsNoDocuments(err):
		return apperror.NotFoundf(op, "document not found")
	case utils.IsDuplicateKey(err):
		return &apperror.Error{Kind: apperror.KindConflict, Op: op, Msg: "document already exists", Err: err}
	case utils.IsWriteError(err):
		return &apperror.Error{Kind: apperror.KindInvalidArgument, Op: op, Msg: "document rejected by the store", Err: err}
	default:
		return apperror.Wrap(apperror.KindStoreUnavailable, op, err)
	}
}

func byID(id bson.ObjectID) bson.M {
	return bson.M{models.FieldID: id}
}
