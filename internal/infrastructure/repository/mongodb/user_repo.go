package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// MongoUserRepository stores auth credentials and profiles in separate
// collections. The split mirrors an identity provider that owns the
// credential record while the application owns the profile, so a
// profile read shortly after registration can legitimately miss.
type MongoUserRepository struct {
	credentials *mongo.Collection
	profiles    *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		credentials: db.Collection("credentials"),
		profiles:    db.Collection("profiles"),
	}
}

// check if MongoUserRepository implements the IUserRepository
var _ contract.IUserRepository = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) CreateCredential(ctx context.Context, cred *entity.Credential) error {
	_, err := r.credentials.InsertOne(ctx, cred)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("credential already exists for %s", cred.Email)
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) GetCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var cred entity.Credential
	err := r.credentials.FindOne(ctx, bson.M{"email": email}).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

func (r *MongoUserRepository) CreateProfile(ctx context.Context, user *entity.User) error {
	_, err := r.profiles.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("profile already exists for %s", user.ID)
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) GetProfileByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.profiles.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) GetProfileByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.profiles.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update and returns the updated profile.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error) {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": updates}

	result, err := r.profiles.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperr.ErrNotFound
	}

	var updated entity.User
	if err := r.profiles.FindOne(ctx, filter).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
