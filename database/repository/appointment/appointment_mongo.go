package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"vetchat/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates an AppointmentRepository on the "appointments" collection.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.DB().Collection("appointments")}
	if err := repo.EnsureIndexes(); err != nil {
		zap.L().Warn("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates the indexes used by the listing and lookup queries.
func (r *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetName("session_idx"),
		},
		{
			Keys:    bson.D{{Key: "preferredDateTime", Value: 1}},
			Options: options.Index().SetName("preferred_time_idx"),
		},
		// Upcoming and status-filtered listings.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "preferredDateTime", Value: 1}},
			Options: options.Index().SetName("status_preferred_time_idx"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("phone_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
