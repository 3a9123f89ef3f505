package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Road Bike 3000", "road-bike-3000"},
		{"  Vélo électrique ", "velo-electrique"},
		{"Kids' Helmet (XL)", "kids-helmet-xl"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := GenerateSlug(tt.name); got != tt.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIsEmail(t *testing.T) {
	valid := []string{"a@x.com", "rider.one+bikes@example.org"}
	invalid := []string{"", "not-an-email", "a@", "@x.com"}

	for _, e := range valid {
		if !IsEmail(e) {
			t.Errorf("expected %q to be accepted", e)
		}
	}
	for _, e := range invalid {
		if IsEmail(e) {
			t.Errorf("expected %q to be rejected", e)
		}
	}
}

func TestIsDuplicateKey(t *testing.T) {
	we := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "dup"}}}
	if !IsDuplicateKey(we) {
		t.Errorf("expected write exception with code 11000 to be a duplicate key")
	}
	if IsDuplicateKey(errors.New("E11000 duplicate key error collection: pedaler.users")) != true {
		t.Errorf("expected message fallback to match")
	}
	if IsDuplicateKey(errors.New("connection reset")) {
		t.Errorf("expected unrelated error not to match")
	}
	if IsDuplicateKey(nil) {
		t.Errorf("expected nil not to match")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Errorf("expected default, got %d", got)
	}
	if got := ParseIntDefault("abc", 7); got != 7 {
		t.Errorf("expected default on bad input, got %d", got)
	}
	if got := ParseIntDefault("12", 7); got != 12 {
		t.Errorf("expected 12, got %d", got)
	}
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestValidateToken(t *testing.T) {
	claims := Claims{
		UserID: "u1",
		Role:   "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok := signToken(t, "s3cret", jwt.SigningMethodHS256, claims)

	got, err := ValidateToken(tok, "s3cret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if got.Role != "ADMIN" || got.UserID != "u1" {
		t.Errorf("unexpected claims %+v", got)
	}

	if _, err := ValidateToken(tok, "other"); err == nil {
		t.Errorf("expected wrong secret to fail")
	}

	expired := claims
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	if _, err := ValidateToken(signToken(t, "s3cret", jwt.SigningMethodHS256, expired), "s3cret"); err == nil {
		t.Errorf("expected expired token to fail")
	}

	if _, err := ValidateToken(signToken(t, "s3cret", jwt.SigningMethodHS512, claims), "s3cret"); err == nil {
		t.Errorf("expected unexpected signing method to fail")
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := NewLogger("pedaler", "test", "loud"); err == nil {
		t.Errorf("expected invalid level to fail")
	}
	logger, err := NewLogger("pedaler", "test", "debug")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Errorf("expected debug level to be enabled")
	}
}
