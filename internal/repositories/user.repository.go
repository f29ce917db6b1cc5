package repositories

import (
	"context"
	"errors"
	"time"

	"kintai/internal/apperrors"
	"kintai/internal/database"
	"kintai/internal/logger"
	. "kintai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY      = 24 * time.Hour
	AUTH_USER_CACHE_PREFIX = "auth:"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (*User, error)
	FindOrCreateByAuthUserID(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) error
	ListActiveStaff(ctx context.Context) ([]*User, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Storage(
			"failed to look up user",
			log.Err("failed to get user by id", err, "id", id),
		)
	}

	return &user, nil
}

func (r *userRepository) GetByAuthUserID(ctx context.Context, authUserID string) (*User, error) {
	log := r.log.Function("GetByAuthUserID")

	var user User
	cacheKey := AUTH_USER_CACHE_PREFIX + authUserID
	if found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		Get(&user); err == nil && found {
		return &user, nil
	}

	err := r.db.SQLWithContext(ctx).First(&user, "auth_user_id = ?", authUserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Storage(
			"failed to look up user",
			log.Err("failed to get user by auth id", err, "authUserID", authUserID),
		)
	}

	if err := r.cacheUser(ctx, &user); err != nil {
		log.Warn("failed to cache user", "authUserID", authUserID, "error", err)
	}

	return &user, nil
}

func (r *userRepository) FindOrCreateByAuthUserID(ctx context.Context, user *User) (*User, error) {
	log := r.log.Function("FindOrCreateByAuthUserID")

	existing, err := r.GetByAuthUserID(ctx, user.AuthUserID)
	if err == nil {
		return existing, nil
	}
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		return nil, err
	}

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return nil, apperrors.Storage(
			"failed to create user",
			log.Err("failed to create user", err, "authUserID", user.AuthUserID),
		)
	}

	log.Info("created user from auth claims", "authUserID", user.AuthUserID, "userID", user.ID)
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(user).Error; err != nil {
		return apperrors.Storage(
			"failed to update user",
			log.Err("failed to update user", err, "id", user.ID),
		)
	}

	r.clearUserCache(ctx, user)
	return nil
}

func (r *userRepository) ListActiveStaff(ctx context.Context) ([]*User, error) {
	log := r.log.Function("ListActiveStaff")

	var users []*User
	err := r.db.SQLWithContext(ctx).
		Where("role = ? AND is_active = ?", RoleStaff, true).
		Order("display_name ASC").
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Storage(
			"failed to list staff",
			log.Err("failed to list active staff", err),
		)
	}

	return users, nil
}

func (r *userRepository) cacheUser(ctx context.Context, user *User) error {
	cacheKey := AUTH_USER_CACHE_PREFIX + user.AuthUserID
	return database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *userRepository) clearUserCache(ctx context.Context, user *User) {
	cacheKey := AUTH_USER_CACHE_PREFIX + user.AuthUserID
	if err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		Delete(); err != nil {
		r.log.Function("clearUserCache").
			Warn("failed to clear user cache", "userID", user.ID, "error", err)
	}
}
