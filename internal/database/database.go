package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/config"
)

// Connect opens the shared mongo client. The client is constructed once,
// owned by main, and closed on shutdown; nothing module-global.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the indexes the payment flow depends on. TxnID is
// unique per attempt; duplicate inserts for the same attempt must fail.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("donations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "txnid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
