package database

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pedaler/pedalerbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Server error codes for field names that cannot be stored.
const (
	errDollarPrefixedField = 52
	errDottedField         = 57
)

// ErrStoreClosed is returned by Ping once a memory store has been closed.
var ErrStoreClosed = errors.New("store closed")

// OpenMemory returns a Store backed by in-process collections. It is used
// for local development without a database and by the tests.
func OpenMemory() *Store {
	var closed atomic.Bool
	return &Store{
		Products: NewMemoryCollection(),
		Orders:   NewMemoryCollection(),
		Reviews:  NewMemoryCollection(),
		Users:    NewMemoryCollection(),
		ping: func(ctx context.Context) error {
			if closed.Load() {
				return ErrStoreClosed
			}
			return ctx.Err()
		},
		close: func(context.Context) error {
			closed.Store(true)
			return nil
		},
	}
}

// MemoryCollection keeps documents in insertion order. Filters match by
// equality on top-level fields, like the queries the API issues to MongoDB.
type MemoryCollection struct {
	mu   sync.RWMutex
	docs []models.Document
}

func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{}
}

func (m *MemoryCollection) Find(ctx context.Context, filter bson.M) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Document, 0)
	for _, doc := range m.docs {
		if matches(doc, filter) {
			out = append(out, cloneDocument(doc))
		}
	}
	return out, nil
}

func (m *MemoryCollection) FindOne(ctx context.Context, filter bson.M) (models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(filter); i >= 0 {
		return cloneDocument(m.docs[i]), nil
	}
	return nil, ErrNoDocuments
}

func (m *MemoryCollection) InsertOne(ctx context.Context, doc models.Document) (models.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return models.InsertResult{}, err
	}
	if err := checkStorable(doc); err != nil {
		return models.InsertResult{}, err
	}
	stored := cloneDocument(doc)
	if _, ok := stored[models.FieldID]; !ok {
		stored[models.FieldID] = bson.NewObjectID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, stored)
	return models.InsertResult{InsertedID: stored[models.FieldID]}, nil
}

func (m *MemoryCollection) UpdateOne(ctx context.Context, filter bson.M, set models.Document, upsert bool) (models.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return models.UpdateResult{}, err
	}
	if err := checkStorable(set); err != nil {
		return models.UpdateResult{}, err
	}
	set = cloneDocument(set)
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(filter)
	if i < 0 {
		if !upsert {
			return models.UpdateResult{}, nil
		}
		doc := models.Document{}
		maps.Copy(doc, filter)
		maps.Copy(doc, set)
		if _, ok := doc[models.FieldID]; !ok {
			doc[models.FieldID] = bson.NewObjectID()
		}
		m.docs = append(m.docs, doc)
		return models.UpdateResult{UpsertedCount: 1, UpsertedID: doc[models.FieldID]}, nil
	}

	doc := m.docs[i]
	changed := false
	for k, v := range set {
		if old, ok := doc[k]; !ok || !reflect.DeepEqual(old, v) {
			doc[k] = v
			changed = true
		}
	}
	res := models.UpdateResult{MatchedCount: 1}
	if changed {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *MemoryCollection) DeleteOne(ctx context.Context, filter bson.M) (models.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return models.DeleteResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(filter)
	if i < 0 {
		return models.DeleteResult{}, nil
	}
	m.docs = append(m.docs[:i], m.docs[i+1:]...)
	return models.DeleteResult{DeletedCount: 1}, nil
}

// indexOf must be called with mu held.
func (m *MemoryCollection) indexOf(filter bson.M) int {
	for i, doc := range m.docs {
		if matches(doc, filter) {
			return i
		}
	}
	return -1
}

// checkStorable rejects top-level names the server refuses to store, with
// the same error shape the driver returns.
func checkStorable(doc models.Document) error {
	for k := range doc {
		var code int
		switch {
		case strings.HasPrefix(k, "$"):
			code = errDollarPrefixedField
		case strings.Contains(k, "."):
			code = errDottedField
		default:
			continue
		}
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{
			Code:    code,
			Message: fmt.Sprintf("field name %q is not valid for storage", k),
		}}}
	}
	return nil
}

// cloneDocument copies doc together with every nested document and array,
// so callers never share state with the stored copy.
func cloneDocument(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return cloneDocument(t)
	case map[string]any:
		return map[string]any(cloneDocument(t))
	case bson.A:
		return bson.A(cloneSlice(t))
	case []any:
		return cloneSlice(t)
	case bson.D:
		out := make(bson.D, len(t))
		for i, e := range t {
			out[i] = bson.E{Key: e.Key, Value: cloneValue(e.Value)}
		}
		return out
	default:
		return v
	}
}

func cloneSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = cloneValue(v)
	}
	return out
}

func matches(doc models.Document, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
