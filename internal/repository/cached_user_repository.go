package repository

import (
	"context"
	"encoding/json"
	"time"

	"campusai/internal/cache"
	"campusai/internal/model"
)

const userCacheTTL = 5 * time.Minute

// cachedUser is the cache encoding of a user. model.User hides the password
// hash from JSON, so the hash gets its own field here.
type cachedUser struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	RollNo       string    `json:"roll_no"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

type cachedUserRepository struct {
	inner UserRepository
	cache *cache.Client
}

// NewCachedUserRepository puts a read-through cache in front of inner.
// Users are never updated, so a cached hit stays valid; misses are not cached
// so a later signup is visible immediately.
func NewCachedUserRepository(inner UserRepository, cache *cache.Client) UserRepository {
	return &cachedUserRepository{inner: inner, cache: cache}
}

func (r *cachedUserRepository) cacheKey(rollNo string) string {
	return "user:rollno:" + rollNo
}

func (r *cachedUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.inner.Create(ctx, user); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, r.cacheKey(user.RollNo))
	return nil
}

func (r *cachedUserRepository) FindByRollNo(ctx context.Context, rollNo string) (*model.User, error) {
	if data, _ := r.cache.Get(ctx, r.cacheKey(rollNo)); data != nil {
		var cached cachedUser
		if err := json.Unmarshal(data, &cached); err == nil {
			return &model.User{
				ID:           cached.ID,
				Name:         cached.Name,
				Role:         cached.Role,
				RollNo:       cached.RollNo,
				PasswordHash: cached.PasswordHash,
				CreatedAt:    cached.CreatedAt,
			}, nil
		}
	}

	user, err := r.inner.FindByRollNo(ctx, rollNo)
	if err != nil || user == nil {
		return user, err
	}

	payload, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Name:         user.Name,
		Role:         user.Role,
		RollNo:       user.RollNo,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err == nil {
		_ = r.cache.Set(ctx, r.cacheKey(rollNo), payload, userCacheTTL)
	}
	return user, nil
}
