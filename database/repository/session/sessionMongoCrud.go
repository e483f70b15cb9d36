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

// Create inserts a new session document.
func (r *MongoSessionRepo) Create(ctx context.Context, session *models.Session) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Context == nil {
		session.Context = map[string]interface{}{}
	}
	if session.Messages == nil {
		session.Messages = []models.Message{}
	}

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetBySessionID retrieves a session with its full message log.
func (r *MongoSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	return &session, nil
}

// UpdateProfile merges the non-empty fields of input into the session.
// Context keys are merged one by one so existing keys survive.
func (r *MongoSessionRepo) UpdateProfile(ctx context.Context, sessionID string, input models.SessionInput) (*models.Session, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if input.UserID != "" {
		set["userId"] = input.UserID
	}
	if input.UserName != "" {
		set["userName"] = input.UserName
	}
	if input.PetName != "" {
		set["petName"] = input.PetName
	}
	if input.Source != "" {
		set["source"] = input.Source
	}
	for k, v := range input.Context {
		set["context."+k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var session models.Session
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"sessionId": sessionID}, bson.M{"$set": set}, opts).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update session %s: %w", sessionID, err)
	}
	return &session, nil
}

// AppendMessage pushes one message onto the session's log.
func (r *MongoSessionRepo) AppendMessage(ctx context.Context, sessionID string, msg models.Message) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"sessionId": sessionID}, update)
	if err != nil {
		return fmt.Errorf("failed to append message to session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session by id.
func (r *MongoSessionRepo) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
