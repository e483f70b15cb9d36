package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vetchat/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMessages returns the last limit messages, oldest first.
// A non-positive limit returns the whole log.
func (r *MongoSessionRepo) GetMessages(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne()
	if limit > 0 {
		opts.SetProjection(bson.M{"messages": bson.M{"$slice": -limit}})
	} else {
		opts.SetProjection(bson.M{"messages": 1})
	}

	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}, opts).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get messages for session %s: %w", sessionID, err)
	}
	if session.Messages == nil {
		return []models.Message{}, nil
	}
	return session.Messages, nil
}

// GetByUserID lists a user's sessions, newest first, without messages.
func (r *MongoSessionRepo) GetByUserID(ctx context.Context, userID string, limit int) ([]models.Session, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"messages": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	sessions := []models.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions for user %s: %w", userID, err)
	}
	return sessions, nil
}
