package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router   *gin.Engine
	store    *database.Store
	gateway  *fakeGateway
	products *repository.Products
	orders   *repository.Orders
}

// fakeGateway records the prices it was asked to charge.
type fakeGateway struct {
	prices []float64
	secret string
	err    error
}

func (f *fakeGateway) CreateIntent(_ context.Context, price float64) (string, error) {
	f.prices = append(f.prices, price)
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := database.OpenMemory()
	api := &testAPI{
		router:   gin.New(),
		store:    store,
		gateway:  &fakeGateway{secret: "pi_1_secret_2"},
		products: repository.NewProducts(store.Products),
		orders:   repository.NewOrders(store.Orders),
	}
	users := repository.NewUsers(store.Users)
	reviews := repository.NewReviews(store.Reviews)
	r := api.router

	r.POST("/create-payment-intent", CreatePaymentIntent(api.gateway))
	r.PUT("/user/:email", UpsertUser(users))
	r.GET("/user/:email", GetUser(users))
	r.PATCH("/user/:email", UpdateUser(users))
	r.GET("/users", GetUsers(users))
	r.GET("/products", GetProducts(api.products))
	r.GET("/products/:id", GetProduct(api.products))
	r.GET("/category", GetProductsByCategory(api.products))
	r.POST("/products", AddProduct(api.products))
	r.PATCH("/products/:id", UpdateProduct(api.products))
	r.DELETE("/products/:id", DeleteProduct(api.products))
	r.POST("/orders", PlaceOrder(api.orders))
	r.GET("/orders", GetOrders(api.orders))
	r.GET("/orders/:id", GetOrder(api.orders))
	r.PATCH("/orders/:id", MarkOrderPaid(api.orders))
	r.DELETE("/orders/:id", DeleteOrder(api.orders))
	r.GET("/userorders", GetUserOrders(api.orders))
	r.POST("/reviews", AddReview(reviews))
	r.GET("/reviews", GetReviews(reviews))
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func expectErrorKind(t *testing.T, w *httptest.ResponseRecorder, status int, kind string) {
	t.Helper()
	expectStatus(t, w, status)
	body := decode[map[string]string](t, w)
	if body["kind"] != kind {
		t.Errorf("expected kind %s, got %v", kind, body)
	}
	if body["error"] == "" {
		t.Errorf("expected an error message")
	}
}

// insertedID extracts the hex id from an InsertResult body.
func insertedID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]any](t, w)
	id, ok := body["insertedId"].(string)
	if !ok || id == "" {
		t.Fatalf("expected insertedId in %s", w.Body.String())
	}
	return id
}
