package repository

import (
	"context"
	"fmt"

	"user-directory/internal/data/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const usersCollection = "users"

type UserRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, id primitive.ObjectID, set map[string]any) (*entity.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewUserRepository(db *mongo.Database, log *zap.Logger) UserRepository {
	return &userRepository{
		coll: db.Collection(usersCollection),
		log:  log,
	}
}

// EnsureIndexes creates the unique index on email. The index is the backstop
// for the non-atomic check-then-insert sequence in the service layer: two
// concurrent creations with the same email both pass the pre-check, but only
// one insert survives the index.
func (ur *userRepository) EnsureIndexes(ctx context.Context) error {
	_, err := ur.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		ur.log.Error("Failed to create email index", zap.Error(err))
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Create inserts a new user document and fills in the generated id.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	res, err := ur.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var user entity.User
	err := ur.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.Hex(), err)
	}
	return &user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := ur.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return &user, nil
}

// FindAll retrieves every user document in store-native order.
func (ur *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	cursor, err := ur.coll.Find(ctx, bson.M{})
	if err != nil {
		ur.log.Error("Failed to get all users", zap.Error(err))
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*entity.User
	for cursor.Next(ctx) {
		var user entity.User
		if err := cursor.Decode(&user); err != nil {
			ur.log.Error("Failed to decode user document", zap.Error(err))
			return nil, fmt.Errorf("decode user document: %w", err)
		}
		users = append(users, &user)
	}

	if err := cursor.Err(); err != nil {
		ur.log.Error("Cursor iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users cursor: %w", err)
	}

	return users, nil
}

// Update applies the given fields with $set and returns the post-update
// document, or nil if the id does not exist.
func (ur *userRepository) Update(ctx context.Context, id primitive.ObjectID, set map[string]any) (*entity.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user entity.User
	err := ur.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return nil, fmt.Errorf("update user %s: %w", id.Hex(), err)
	}

	return &user, nil
}

// Delete removes the document and returns its prior snapshot, or nil if the
// id does not exist.
func (ur *userRepository) Delete(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var user entity.User
	err := ur.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return nil, fmt.Errorf("delete user %s: %w", id.Hex(), err)
	}

	ur.log.Info("User deleted", zap.String("user_id", id.Hex()))
	return &user, nil
}

func (ur *userRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	count, err := ur.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		ur.log.Error("Failed to count users by role",
			zap.Error(err),
			zap.String("role", string(role)),
		)
		return 0, fmt.Errorf("count users by role %s: %w", role, err)
	}
	return count, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := ur.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		ur.log.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}
	return count, nil
}
