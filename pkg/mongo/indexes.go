package mongo

import (
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vovantri123/glamora-store-api/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Checkout attempts: payment-result view looks attempts up by order id.
	{
		CollectionName: "checkout_attempts",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetName("idx_attempt_order_id"),
		},
	},
	// Session history listing, newest first.
	{
		CollectionName: "checkout_attempts",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_attempt_session_created"),
		},
	},
	// Funnel aggregation groups by terminal state over a date window.
	{
		CollectionName: "checkout_attempts",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "created_at", Value: -1},
				{Key: "state", Value: 1},
			},
			Options: options.Index().SetName("idx_attempt_created_state"),
		},
	},
}

func EnsureIndexesOnStartup(db *mongo.Database) {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	for _, config := range requiredIndexes {
		collection := db.Collection(config.CollectionName)
		name, err := collection.Indexes().CreateOne(ctx, config.IndexModel)
		if err != nil {
			log.Fatalf("Failed to create index on %s: %v", config.CollectionName, err)
		}
		log.Printf("Ensured index %s on %s", name, config.CollectionName)
	}
}
