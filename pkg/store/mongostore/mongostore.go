// Package mongostore persists templates in a MongoDB collection, satisfying
// the store.Store contract. Majority write concern gives the read-after-write
// guarantee the contract demands.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.uber.org/zap"

	"github.com/lumenarts/forge/pkg/model"
	"github.com/lumenarts/forge/pkg/store"
)

const defaultCollection = "templates"

// Config carries the connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Store implements store.Store on top of a MongoDB collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger

	mu       sync.Mutex
	revision uint64

	now func() time.Time
}

var _ store.Store = (*Store)(nil)

// Connect dials MongoDB and returns a ready store. Callers own the returned
// store and must Close it.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongostore: uri is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongostore: database is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetWriteConcern(writeconcern.Majority()).
		SetReadConcern(readconcern.Majority())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, store.ErrUnavailable
	}

	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Close releases the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Create(ctx context.Context, t model.Template) (string, error) {
	if err := model.Validate(t).Err(); err != nil {
		return "", err
	}

	stored := t.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = s.now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	if _, err := s.collection.InsertOne(ctx, stored); err != nil {
		return "", s.translate("insert template", err)
	}
	return stored.ID, nil
}

func (s *Store) Update(ctx context.Context, id string, t model.Template) error {
	if err := model.Validate(t).Err(); err != nil {
		return err
	}

	stored := t.Clone()
	stored.ID = id
	stored.UpdatedAt = s.now().UTC()

	// Whole-document replacement: last writer wins, no field-level merge.
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": id}, stored)
	if err != nil {
		return s.translate("replace template", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return s.translate("delete template", err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (model.Template, error) {
	var out model.Template
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Template{}, store.ErrNotFound
	}
	if err != nil {
		return model.Template{}, s.translate("find template", err)
	}
	return out, nil
}

func (s *Store) List(ctx context.Context) ([]model.Template, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, s.translate("list templates", err)
	}
	defer cursor.Close(ctx)

	var out []model.Template
	if err := cursor.All(ctx, &out); err != nil {
		return nil, s.translate("decode templates", err)
	}
	return out, nil
}

// Watch re-reads the full collection on every change-stream event and emits
// it as an authoritative snapshot, mirroring the push-based live query the
// memory store models.
func (s *Store) Watch(ctx context.Context) (<-chan store.Snapshot, error) {
	stream, err := s.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, s.translate("open change stream", err)
	}

	ch := make(chan store.Snapshot, 1)
	initial, err := s.List(ctx)
	if err != nil {
		_ = stream.Close(ctx)
		return nil, err
	}
	ch <- store.Snapshot{Templates: initial, Revision: s.nextRevision()}

	go func() {
		defer close(ch)
		defer func() { _ = stream.Close(context.Background()) }()

		for stream.Next(ctx) {
			templates, err := s.List(ctx)
			if err != nil {
				s.logger.Warn("snapshot refresh failed", zap.Error(err))
				continue
			}
			snap := store.Snapshot{Templates: templates, Revision: s.nextRevision()}
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (s *Store) nextRevision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	return s.revision
}

func (s *Store) translate(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		s.logger.Warn("store unavailable", zap.String("op", op), zap.Error(err))
		return store.ErrUnavailable
	}
	return fmt.Errorf("mongostore: %s: %w", op, err)
}
