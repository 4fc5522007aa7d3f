package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/diary/internal/server/repositories/entries"
	"github.com/dmitrijs2005/diary/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	diaryCollection = "diary"
)

// MongoRepositoryManager serves both repositories from one client.
type MongoRepositoryManager struct {
	client  *mongo.Client
	users   *users.MongoRepository
	entries *entries.MongoRepository
}

// mongoConnect is a seam for testing mongo.Connect.
var mongoConnect = func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
	return mongo.Connect(ctx, opts...)
}

// NewMongoRepositoryManager connects to uri and ensures the unique username
// index exists before any registration can happen.
func NewMongoRepositoryManager(ctx context.Context, uri, dbName string) (*MongoRepositoryManager, error) {
	client, err := mongoConnect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	m := newMongoRepositoryManager(client, client.Database(dbName))
	if err := m.users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return m, nil
}

func newMongoRepositoryManager(client *mongo.Client, db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client:  client,
		users:   users.NewMongoRepository(db.Collection(usersCollection)),
		entries: entries.NewMongoRepository(db.Collection(diaryCollection)),
	}
}

func (m *MongoRepositoryManager) Users() users.Repository     { return m.users }
func (m *MongoRepositoryManager) Entries() entries.Repository { return m.entries }

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
