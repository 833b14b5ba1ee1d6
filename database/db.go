package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lawyerconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Connector opens the MongoDB connection lazily, on the first durable call,
// so the service can start and serve while the database is down.
type Connector struct {
	uri     string
	dbName  string
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	client *mongo.Client
}

// NewConnector prepares a connector. Nothing is dialled until Database is called.
func NewConnector(uri, dbName string, logger *zap.Logger) *Connector {
	return &Connector{
		uri:     uri,
		dbName:  dbName,
		timeout: 10 * time.Second,
		logger:  logger,
	}
}

// Database returns the handle to the configured database, connecting first
// if needed. Connection or ping failures wrap models.ErrStoreUnavailable.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client.Database(c.dbName), nil
	}
	if c.uri == "" {
		return nil, fmt.Errorf("%w: no database url configured", models.ErrStoreUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(c.uri).
		SetServerSelectionTimeout(c.timeout)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to MongoDB: %v", models.ErrStoreUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: failed to ping MongoDB: %v", models.ErrStoreUnavailable, err)
	}
	c.client = client
	c.logger.Info("Connected to MongoDB successfully", zap.String("db", c.dbName))
	return client.Database(c.dbName), nil
}

// Ping reports whether the database currently answers. It never dials a new
// connection; an unopened connector reports false.
func (c *Connector) Ping(ctx context.Context) bool {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return false
	}
	return client.Ping(ctx, nil) == nil
}

// Close disconnects the client if one was opened.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	return err
}
