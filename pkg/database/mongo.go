package database

import (
	"context"
	"fmt"
	"time"

	"user-directory/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store wraps the Mongo client and the application database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Database returns the application database handle.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Collection returns a collection handle from the application database.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// InitDB connects to the document store and verifies the connection.
func InitDB(config utils.DatabaseConfig) (*Store, error) {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second

	opts := options.Client().
		ApplyURI(config.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	// Test connection
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelPing()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(config.Name),
	}, nil
}
