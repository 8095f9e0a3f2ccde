// Package mongo implements the repository interfaces on MongoDB.
//
// LAZY CONNECTION:
// The client is not dialled at startup. The first request that needs the
// store calls client(), which connects under a mutex so concurrent first
// requests do not open duplicate clients. The mutex is held only during
// setup; once connected, requests read the cached client and never block on
// each other. A failed connect is not cached, so the next request tries
// again.
package mongo

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/repository"
)

// Collection names match the ones the original Node deployment created,
// so existing data keeps working.
const (
	memoriesCollection  = "memories"
	guestbookCollection = "guestbookentries"
)

var _ repository.Store = (*Store)(nil)

// Store is a MongoDB-backed repository.Store.
type Store struct {
	uri      string
	database string

	mu     sync.Mutex
	conn   *mongo.Client
	connFn func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error)
}

// New returns a Store for the given connection string and database name.
// No network I/O happens here.
func New(uri, database string) *Store {
	return &Store{
		uri:      uri,
		database: database,
		connFn:   mongo.Connect,
	}
}

// client returns the shared client, connecting on first use.
func (s *Store) client(ctx context.Context) (*mongo.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.conn, nil
	}
	if s.uri == "" {
		return nil, apperror.NotConfigured("MONGODB_URI is not set")
	}

	c, err := s.connFn(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connecting: %w", err)
	}
	s.conn = c
	return c, nil
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	c, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(s.database).Collection(name), nil
}

// Ping runs a primary read-preference ping, the driver's liveness probe.
func (s *Store) Ping(ctx context.Context) error {
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping: %w", err)
	}
	return nil
}

// Close disconnects the client if one was ever established.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Disconnect(ctx)
	s.conn = nil
	if err != nil {
		return fmt.Errorf("mongo: disconnecting: %w", err)
	}
	return nil
}

// parseID decodes a hex ObjectID, rejecting malformed input as a
// validation error before the store is queried.
func parseID(resource, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.ValidationFailed("id", fmt.Sprintf("invalid %s id %q", resource, id))
	}
	return oid, nil
}
