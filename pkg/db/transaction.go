package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs callback inside a session transaction when the
// deployment supports them, and directly otherwise. Standalone servers do
// not.
func WithTransaction(ctx context.Context, db *mongo.Database, transactional bool, callback func(ctx context.Context) error) error {
	if !transactional {
		return callback(ctx)
	}

	session, err := db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx mongo.SessionContext) (any, error) {
		return nil, callback(ctx)
	})
	return err
}
