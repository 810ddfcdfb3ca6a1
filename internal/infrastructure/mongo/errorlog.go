// Package mongo stores error records in MongoDB. Each write opens its own
// client and releases it before returning.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/eventpill-api/internal/config"
	"github.com/eventpill-api/internal/domain"
)

// session is one acquired connection scoped to a single write.
type session interface {
	InsertOne(ctx context.Context, doc any) error
	Close(ctx context.Context) error
}

type dialFunc func(ctx context.Context) (session, error)

// ErrorLogWriter inserts error records into <database>.<collection>.
type ErrorLogWriter struct {
	dial dialFunc
}

func NewErrorLogWriter(cfg *config.Config) *ErrorLogWriter {
	uri, db, coll := cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection
	return &ErrorLogWriter{dial: func(ctx context.Context) (session, error) {
		client, err := mongo.Connect(options.Client().ApplyURI(uri))
		if err != nil {
			return nil, err
		}
		return &clientSession{client: client, coll: client.Database(db).Collection(coll)}, nil
	}}
}

// Write connects, inserts rec, and disconnects on every exit path.
func (w *ErrorLogWriter) Write(ctx context.Context, rec *domain.ErrorRecord) (err error) {
	s, err := w.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		if cerr := s.Close(context.WithoutCancel(ctx)); cerr != nil {
			err = errors.Join(err, fmt.Errorf("disconnect mongo: %w", cerr))
		}
	}()
	if err := s.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert error record: %w", err)
	}
	return nil
}

type clientSession struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func (s *clientSession) InsertOne(ctx context.Context, doc any) error {
	_, err := s.coll.InsertOne(ctx, doc)
	return err
}

func (s *clientSession) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
