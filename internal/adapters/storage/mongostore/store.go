// Package mongostore keeps designer layouts in a MongoDB collection, one
// document per layout key.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// Defaults applied when the configuration leaves a name empty.
const (
	DefaultDatabase   = "quotation"
	DefaultCollection = "layouts"
)

// Config locates the collection.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// layoutDoc is the stored shape. Data holds the layout JSON as a string so
// the wire format stays identical across backends.
type layoutDoc struct {
	ID        string    `bson:"_id"`
	Scope     string    `bson:"scope"`
	Owner     string    `bson:"owner"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store implements ports.LayoutStore.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ ports.LayoutStore = (*Store)(nil)

// New connects the client. The driver dials lazily, so use Ping to verify
// the server is reachable.
func New(cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}

	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}

	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies connectivity to the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Checker exposes Ping to the readiness registry.
func (s *Store) Checker() ports.HealthChecker {
	return ports.NewChecker("mongo", s.Ping)
}

// LoadLayout finds the document for key.
func (s *Store) LoadLayout(ctx context.Context, key layout.Key) ([]byte, bool, error) {
	if err := key.Validate(); err != nil {
		return nil, false, err
	}

	var doc layoutDoc

	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: documentID(key)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("find layout %s: %w", key, err)
	}

	return []byte(doc.Data), true, nil
}

// SaveLayout upserts the document for key.
func (s *Store) SaveLayout(ctx context.Context, key layout.Key, data []byte) error {
	if err := key.Validate(); err != nil {
		return err
	}

	doc := newLayoutDoc(key, data, time.Now().UTC())

	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.ID}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace layout %s: %w", key, err)
	}

	return nil
}

// DeleteLayout deletes the document for key, if any.
func (s *Store) DeleteLayout(ctx context.Context, key layout.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: documentID(key)}}); err != nil {
		return fmt.Errorf("delete layout %s: %w", key, err)
	}

	return nil
}

func documentID(key layout.Key) string {
	return key.String()
}

func newLayoutDoc(key layout.Key, data []byte, now time.Time) layoutDoc {
	return layoutDoc{
		ID:        documentID(key),
		Scope:     string(key.Scope),
		Owner:     key.Owner(),
		Data:      string(data),
		UpdatedAt: now,
	}
}
