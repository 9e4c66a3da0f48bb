package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"campusai/internal/db"
	apperrors "campusai/internal/errors"
	"campusai/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByRollNo(ctx context.Context, rollNo string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository. Queries run on the
// request's scoped connection when the context carries one.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user and populates its ID.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.Name == "" || user.Role == "" || user.RollNo == "" || user.PasswordHash == "" {
		return apperrors.ErrValidation
	}
	if err := db.FromContext(ctx, r.db).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByRollNo returns nil, nil when no user has rollNo.
func (r *userRepository) FindByRollNo(ctx context.Context, rollNo string) (*model.User, error) {
	var user model.User
	err := db.FromContext(ctx, r.db).Where("roll_no = ?", rollNo).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by roll number: %w", err)
	}
	return &user, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
