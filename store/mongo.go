package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEntry struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoStore keeps one document per key in a single collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName, collection string) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(dbName).Collection(collection),
	}
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc mongoEntry
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, mongoEntry{Key: key, Value: string(value)}, opts)
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo scan %s: %w", prefix, err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEntry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode scan %s: %w", prefix, err)
	}

	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, Entry{Key: d.Key, Value: []byte(d.Value)})
	}
	return entries, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
