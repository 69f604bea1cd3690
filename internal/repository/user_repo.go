package repository

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/moranr123/Pawsafety-sub002/internal/config"
	"github.com/moranr123/Pawsafety-sub002/internal/models"
	"google.golang.org/api/iterator"
)

type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		client: config.FirestoreClient,
	}
}

// CreateUser creates a new user in Firestore
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.client.Collection("users").Doc(user.UserID).Set(ctx, user)
	return err
}

// GetUserByID retrieves a user by their ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	doc, err := r.client.Collection("users").Doc(userID).Get(ctx)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by their username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	iter := r.client.Collection("users").Where("username", "==", username).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.New("user not found")
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}

	return &user, nil
}
