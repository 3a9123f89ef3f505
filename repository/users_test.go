package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/models"
)

func TestUserUpsertTwiceKeepsOneUser(t *testing.T) {
	u := NewUsers(database.NewMemoryCollection())
	ctx := context.Background()

	first, err := u.Upsert(ctx, "a@x.com", models.Document{"name": "Ann", "city": "Oslo"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first.UpsertedCount != 1 {
		t.Errorf("expected first call to insert, got %+v", first)
	}

	second, err := u.Upsert(ctx, "a@x.com", models.Document{"name": "Anna"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if second.UpsertedCount != 0 || second.MatchedCount != 1 {
		t.Errorf("expected second call to match, got %+v", second)
	}

	all, _ := u.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one user, got %d", len(all))
	}
	got, err := u.Get(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got["name"] != "Anna" || got["city"] != "Oslo" {
		t.Errorf("unexpected user %v", got)
	}
}

func TestUserUpsertCannotChangeEmail(t *testing.T) {
	u := NewUsers(database.NewMemoryCollection())
	ctx := context.Background()

	if _, err := u.Upsert(ctx, "a@x.com", models.Document{"email": "evil@x.com", "name": "Ann"}); err != nil {
		t.Fatal(err)
	}
	if _, err := u.Get(ctx, "evil@x.com"); !errors.Is(err, apperror.NotFound) {
		t.Errorf("expected payload email to be ignored, got %v", err)
	}
	if _, err := u.Get(ctx, "a@x.com"); err != nil {
		t.Errorf("expected user under path email: %v", err)
	}
}

func TestUserUpdate(t *testing.T) {
	u := NewUsers(database.NewMemoryCollection())
	ctx := context.Background()

	missing, err := u.Update(ctx, "ghost@x.com", models.Document{"name": "Ghost"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if missing.MatchedCount != 0 || missing.UpsertedCount != 0 {
		t.Errorf("update must not create users, got %+v", missing)
	}
	if all, _ := u.ListAll(ctx); len(all) != 0 {
		t.Errorf("expected no users, got %d", len(all))
	}

	_, _ = u.Upsert(ctx, "a@x.com", models.Document{"name": "Ann", "phone": "123"})
	res, err := u.Update(ctx, "a@x.com", models.Document{"phone": "456"})
	if err != nil || res.MatchedCount != 1 {
		t.Fatalf("Update: %+v %v", res, err)
	}
	got, _ := u.Get(ctx, "a@x.com")
	if got["name"] != "Ann" || got["phone"] != "456" {
		t.Errorf("unexpected user %v", got)
	}

	if _, err := u.Update(ctx, "a@x.com", models.Document{"email": "b@x.com"}); !errors.Is(err, apperror.InvalidArgument) {
		t.Errorf("expected InvalidArgument when only the key is sent, got %v", err)
	}
}

func TestUserInvalidEmail(t *testing.T) {
	col := newCounting()
	u := NewUsers(col)
	ctx := context.Background()

	if _, err := u.Get(ctx, "nope"); !errors.Is(err, apperror.InvalidArgument) {
		t.Errorf("Get: expected InvalidArgument, got %v", err)
	}
	if _, err := u.Upsert(ctx, "nope", models.Document{}); !errors.Is(err, apperror.InvalidArgument) {
		t.Errorf("Upsert: expected InvalidArgument, got %v", err)
	}
	if col.calls != 0 {
		t.Errorf("expected no store calls, got %d", col.calls)
	}
}

func TestUserGetMissing(t *testing.T) {
	u := NewUsers(database.NewMemoryCollection())
	if _, err := u.Get(context.Background(), "a@x.com"); !errors.Is(err, apperror.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestReviewsAppendOnly(t *testing.T) {
	r := NewReviews(database.NewMemoryCollection())
	ctx := context.Background()

	for _, rating := range []float64{5, 3} {
		if _, err := r.Create(ctx, models.Document{"author": "a@x.com", "rating": rating}); err != nil {
			t.Fatal(err)
		}
	}
	all, err := r.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 reviews, got %d", len(all))
	}
}

func TestUserDuplicateKeyIsConflict(t *testing.T) {
	u := NewUsers(failingCollection{err: errors.New("E11000 duplicate key error collection: pedaler.users index: email_1")})
	_, err := u.Upsert(context.Background(), "a@x.com", models.Document{"name": "Ann"})
	if !errors.Is(err, apperror.Conflict) {
		t.Errorf("expected Conflict, got %v", err)
	}
	if msg := apperror.Message(err); msg != "document already exists" {
		t.Errorf("unexpected client message %q", msg)
	}
}

func TestOperatorFieldNamesRejectedEverywhere(t *testing.T) {
	ctx := context.Background()
	bad := models.Document{"$inc": models.Document{"visits": 1}}

	if _, err := NewUsers(database.NewMemoryCollection()).Upsert(ctx, "a@x.com", bad); !errors.Is(err, apperror.InvalidArgument) {
		t.Errorf("Upsert: expected InvalidArgument, got %v", err)
	}
	if _, err := NewUsers(database.NewMemoryCollection()).Update(ctx, "a@x.com", bad); !errors.Is(err, apperror.InvalidArgument) {
		t.Errorf("Update: expected InvalidArgument, got %v", err)
	}
	if _, err := NewReviews(database.NewMemoryCollection()).Create(ctx, bad); !errors.Is(err, apperror.InvalidArgument) {
		t.Errorf("reviews Create: expected InvalidArgument, got %v", err)
	}
	order := models.Document{"userEmail": "a@x.com", "price": 5, "a.b": 1}
	if _, err := NewOrders(database.NewMemoryCollection()).Create(ctx, order); !errors.Is(err, apperror.InvalidArgument) {
		t.Errorf("orders Create: expected InvalidArgument, got %v", err)
	}
}
