package lifecycle

import (
	"context"
	"fmt"

	"citylens-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoStore backs the manager with the issues and users collections.
type mongoStore struct {
	issues *mongo.Collection
	users  *mongo.Collection
}

// NewMongoStore wraps db's issues and users collections as a Store.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{
		issues: db.Collection("issues"),
		users:  db.Collection("users"),
	}
}

func (s *mongoStore) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	var issue models.Issue
	if err := s.issues.FindOne(ctx, bson.M{"_id": objID}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("issue %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &issue, nil
}

func (s *mongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &user, nil
}

func (s *mongoStore) UpdateIssue(ctx context.Context, id string, fields map[string]interface{}) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := s.issues.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}
	return nil
}
