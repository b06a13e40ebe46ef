package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FunnelBucket is one day's worth of checkout outcomes.
type FunnelBucket struct {
	Day       string `json:"day" bson:"_id"`
	Started   int    `json:"started" bson:"started"`
	Finalized int    `json:"finalized" bson:"finalized"`
	Redirects int    `json:"redirects" bson:"redirects"`
	Failed    int    `json:"failed" bson:"failed"`
}

type FunnelResult struct {
	Buckets       []FunnelBucket `json:"buckets"`
	TotalAttempts int            `json:"total_attempts"`
}

// GetCheckoutFunnel aggregates attempt outcomes per day over the last `days`
// days, for the back-office conversion view.
func (j *Journal) GetCheckoutFunnel(ctx context.Context, days int) (*FunnelResult, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	countWhere := func(state string) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{
			{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$state", state}}},
				1,
				0,
			}},
		}}}
	}

	pipeline := bson.A{
		bson.D{
			{Key: "$match", Value: bson.D{
				{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
			}},
		},
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: bson.D{
					{Key: "$dateToString", Value: bson.D{
						{Key: "format", Value: "%Y-%m-%d"},
						{Key: "date", Value: "$created_at"},
					}},
				}},
				{Key: "started", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "finalized", Value: countWhere("FINALIZED")},
				{Key: "redirects", Value: countWhere("REDIRECTING_TO_GATEWAY")},
				{Key: "failed", Value: countWhere("FAILED")},
			}},
		},
		bson.D{
			{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}},
		},
	}

	cursor, err := j.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []FunnelBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	total := 0
	for _, bucket := range buckets {
		total += bucket.Started
	}

	return &FunnelResult{
		Buckets:       buckets,
		TotalAttempts: total,
	}, nil
}
