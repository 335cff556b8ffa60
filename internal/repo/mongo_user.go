package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

func (m *MongoRepo) GetUser(ctx context.Context, username string) (*models.User, error) {
	var doc userDoc
	if err := m.DB.Collection(usersCollection).FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		return nil, mongoNotFound(err)
	}
	u := doc.model()
	return &u, nil
}

// SetPasswordHash stores a new hash and drops any plaintext password field.
func (m *MongoRepo) SetPasswordHash(ctx context.Context, username, hash string) error {
	res, err := m.DB.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"password_hash": hash}, "$unset": bson.M{"password": ""}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) CreateUser(ctx context.Context, u *models.User) error {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    now(),
	}
	if _, err := m.DB.Collection(usersCollection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	u.ID, u.CreatedAt = doc.ID.Hex(), doc.CreatedAt
	return nil
}
