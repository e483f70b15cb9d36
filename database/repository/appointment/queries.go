package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"vetchat/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultListLimit = 50

func (r *MongoAppointmentRepo) GetBySessionID(ctx context.Context, sessionID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"sessionId": sessionID}, opts)
}

func (r *MongoAppointmentRepo) GetByPhone(ctx context.Context, phone string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "preferredDateTime", Value: -1}})
	return r.find(ctx, bson.M{"phone": phone}, opts)
}

func (r *MongoAppointmentRepo) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int64, error) {
	query := listQuery(filter)

	countCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	total, err := r.coll.CountDocuments(countCtx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "preferredDateTime", Value: 1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(limit))

	appts, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func (r *MongoAppointmentRepo) Upcoming(ctx context.Context, now time.Time, limit int) ([]models.Appointment, error) {
	query := bson.M{
		"preferredDateTime": bson.M{"$gte": now},
		"status": bson.M{"$in": []models.AppointmentStatus{
			models.AppointmentPending,
			models.AppointmentConfirmed,
		}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "preferredDateTime", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, query, opts)
}

// listQuery builds the Mongo filter for an admin listing.
func listQuery(filter models.AppointmentFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		window := bson.M{}
		if filter.StartDate != nil {
			window["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			window["$lte"] = *filter.EndDate
		}
		query["preferredDateTime"] = window
	}
	return query
}

func (r *MongoAppointmentRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}
