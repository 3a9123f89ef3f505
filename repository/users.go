package repository

import (
	"context"

	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Users are keyed by email. A payload can never move a user to another
// email; the key always comes from the caller's email argument.
type Users struct {
	col database.Collection
}

func NewUsers(col database.Collection) *Users {
	return &Users{col: col}
}

// Upsert inserts the user or merges fields into the existing one.
func (u *Users) Upsert(ctx context.Context, email string, fields models.Document) (models.UpdateResult, error) {
	const op = "users.Upsert"
	email, err := requireEmail(op, email)
	if err != nil {
		return models.UpdateResult{}, err
	}
	set, err := sanitize(op, fields)
	if err != nil {
		return models.UpdateResult{}, err
	}
	set[models.FieldEmail] = email

	res, err := u.col.UpdateOne(ctx, bson.M{models.FieldEmail: email}, set, true)
	if err != nil {
		return models.UpdateResult{}, storeError(op, err)
	}
	return res, nil
}

func (u *Users) Get(ctx context.Context, email string) (models.Document, error) {
	const op = "users.Get"
	email, err := requireEmail(op, email)
	if err != nil {
		return nil, err
	}
	doc, err := u.col.FindOne(ctx, bson.M{models.FieldEmail: email})
	if err != nil {
		if database.IsNoDocuments(err) {
			return nil, apperror.NotFoundf(op, "user %s not found", email)
		}
		return nil, storeError(op, err)
	}
	return doc, nil
}

// Update merges partial into an existing user and never creates one.
func (u *Users) Update(ctx context.Context, email string, partial models.Document) (models.UpdateResult, error) {
	const op = "users.Update"
	email, err := requireEmail(op, email)
	if err != nil {
		return models.UpdateResult{}, err
	}
	set, err := sanitize(op, partial)
	if err != nil {
		return models.UpdateResult{}, err
	}
	delete(set, models.FieldEmail)
	if len(set) == 0 {
		return models.UpdateResult{}, apperror.Invalidf(op, "no updates provided")
	}

	res, err := u.col.UpdateOne(ctx, bson.M{models.FieldEmail: email}, set, false)
	if err != nil {
		return models.UpdateResult{}, storeError(op, err)
	}
	return res, nil
}

func (u *Users) ListAll(ctx context.Context) ([]models.Document, error) {
	docs, err := u.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeError("users.ListAll", err)
	}
	return docs, nil
}
