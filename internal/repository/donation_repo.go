package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/domain"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/models"
)

type DonationRepository struct {
	coll *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{coll: db.Collection("donations")}
}

func (r *DonationRepository) Create(ctx context.Context, d *models.Donation) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (r *DonationRepository) GetByTxnID(ctx context.Context, txnid string) (*models.Donation, error) {
	var d models.Donation
	err := r.coll.FindOne(ctx, bson.M{"txnid": txnid}).Decode(&d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateStatus records the classified outcome of an attempt. CompletedAt is
// set only for the completed status.
func (r *DonationRepository) UpdateStatus(ctx context.Context, txnid, status, outcome, gatewayRef string) error {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if outcome != "" {
		set["outcome"] = outcome
	}
	if gatewayRef != "" {
		set["gateway_ref"] = gatewayRef
	}
	if status == domain.DonationStatusCompleted {
		set["completed_at"] = time.Now()
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"txnid": txnid}, bson.M{"$set": set})
	return err
}

// List returns donations newest first, optionally filtered by status.
func (r *DonationRepository) List(ctx context.Context, status string, limit, offset int64) ([]models.Donation, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Donation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
