package database

import (
	"context"
	"fmt"

	"github.com/pedaler/pedalerbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Connect opens a client and pings the primary. The caller owns the client
// and must Disconnect it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// OpenMongo connects and returns a Store over the named database.
func OpenMongo(ctx context.Context, uri, databaseName string) (*Store, error) {
	client, err := Connect(ctx, uri)
	if err != nil {
		return nil, err
	}
	db := client.Database(databaseName)

	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		Products: NewMongoCollection(db.Collection(models.ProductsCollection)),
		Orders:   NewMongoCollection(db.Collection(models.OrdersCollection)),
		Reviews:  NewMongoCollection(db.Collection(models.ReviewsCollection)),
		Users:    NewMongoCollection(db.Collection(models.UsersCollection)),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}

// EnsureIndexes creates the unique email index users are keyed on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(models.UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: models.FieldEmail, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

type MongoCollection struct {
	col *mongo.Collection
}

func NewMongoCollection(col *mongo.Collection) *MongoCollection {
	return &MongoCollection{col: col}
}

func (m *MongoCollection) Find(ctx context.Context, filter bson.M) ([]models.Document, error) {
	cursor, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]models.Document, 0)
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *MongoCollection) FindOne(ctx context.Context, filter bson.M) (models.Document, error) {
	var doc models.Document
	if err := m.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *MongoCollection) InsertOne(ctx context.Context, doc models.Document) (models.InsertResult, error) {
	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, err
	}
	return models.InsertResult{InsertedID: res.InsertedID}, nil
}

func (m *MongoCollection) UpdateOne(ctx context.Context, filter bson.M, set models.Document, upsert bool) (models.UpdateResult, error) {
	opts := options.UpdateOne().SetUpsert(upsert)
	res, err := m.col.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return models.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (m *MongoCollection) DeleteOne(ctx context.Context, filter bson.M) (models.DeleteResult, error) {
	res, err := m.col.DeleteOne(ctx, filter)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}
