package durable

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lawyerconnect/database"
	"lawyerconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
	"go.uber.org/zap"
)

// Mongo is a Collection backed by one MongoDB collection.
type Mongo[D Document[D]] struct {
	conn      *database.Connector
	name      string
	indexes   []mongo.IndexModel
	opTimeout time.Duration
	logger    *zap.Logger

	indexOnce sync.Once
}

// NewMongo binds a collection name on the connector. Indexes are created the
// first time the collection is reached.
func NewMongo[D Document[D]](conn *database.Connector, name string, indexes []mongo.IndexModel, logger *zap.Logger) *Mongo[D] {
	return &Mongo[D]{
		conn:      conn,
		name:      name,
		indexes:   indexes,
		opTimeout: 5 * time.Second,
		logger:    logger,
	}
}

// newContext bounds a single durable call.
func (m *Mongo[D]) newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.opTimeout)
}

func (m *Mongo[D]) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := m.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	coll := db.Collection(m.name)
	m.indexOnce.Do(func() {
		if err := m.ensureIndexes(coll); err != nil {
			m.logger.Warn("failed to create indexes", zap.String("collection", m.name), zap.Error(err))
		}
	})
	return coll, nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (m *Mongo[D]) ensureIndexes(coll *mongo.Collection) error {
	if len(m.indexes) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := coll.Indexes().CreateMany(ctx, m.indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (m *Mongo[D]) Insert(ctx context.Context, doc D) (D, error) {
	ctx, cancel := m.newContext(ctx)
	defer cancel()

	var zero D
	coll, err := m.collection(ctx)
	if err != nil {
		return zero, err
	}
	if doc.DocID().IsZero() {
		doc = doc.WithDocID(newObjectID())
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return zero, m.wrap("insert into", err)
	}
	return doc, nil
}

func (m *Mongo[D]) FindByID(ctx context.Context, id string) (D, error) {
	var zero D
	oid, err := parseID(m.name, id)
	if err != nil {
		return zero, err
	}

	ctx, cancel := m.newContext(ctx)
	defer cancel()

	coll, err := m.collection(ctx)
	if err != nil {
		return zero, err
	}
	var doc D
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return zero, m.wrap("fetch from", err)
	}
	return doc, nil
}

func (m *Mongo[D]) FindBy(ctx context.Context, field string, value any) ([]D, error) {
	return m.find(ctx, bson.M{field: value})
}

func (m *Mongo[D]) List(ctx context.Context) ([]D, error) {
	return m.find(ctx, bson.M{})
}

func (m *Mongo[D]) find(ctx context.Context, filter bson.M) ([]D, error) {
	ctx, cancel := m.newContext(ctx)
	defer cancel()

	coll, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, m.wrap("query", err)
	}
	defer cursor.Close(ctx)

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, m.wrap("decode", err)
	}
	return docs, nil
}

func (m *Mongo[D]) UpdateFields(ctx context.Context, id string, guard, set Fields) (D, error) {
	var zero D
	if err := checkSet(set); err != nil {
		return zero, err
	}
	oid, err := parseID(m.name, id)
	if err != nil {
		return zero, err
	}

	ctx, cancel := m.newContext(ctx)
	defer cancel()

	coll, err := m.collection(ctx)
	if err != nil {
		return zero, err
	}

	filter := bson.M{"_id": oid}
	for k, v := range guard {
		filter[k] = v
	}
	update := bson.M{"$set": bson.M(set)}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc D
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return zero, m.wrap("update", err)
	}
	return doc, nil
}

// wrap translates driver errors into the shared sentinels.
func (m *Mongo[D]) wrap(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s %s: %w", op, m.name, models.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %s: %w: %v", op, m.name, models.ErrConflict, err)
	case isConnectivityError(err):
		return fmt.Errorf("%s %s: %w: %v", op, m.name, models.ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("failed to %s %s: %w", op, m.name, err)
	}
}

// isConnectivityError reports whether err means the database could not be reached.
func isConnectivityError(err error) bool {
	if errors.Is(err, models.ErrStoreUnavailable) {
		return true
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var sse topology.ServerSelectionError
	return errors.As(err, &sse)
}
