package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-service/internal/domain/user"
	pkgerrors "user-service/pkg/errors"
	"user-service/pkg/logger"
)

// UserRepoPG implements the user Repository using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Username string `gorm:"not null"`                 // Display name (required)
	Email    string `gorm:"not null;unique"`          // Contact address (required, unique)
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{
		ID:       m.ID,
		Username: m.Username,
		Email:    m.Email,
	}
}

// Create inserts a new user into the database and returns it with its id.
func (r *UserRepoPG) Create(ctx context.Context, in user.CreateInput) (*user.User, error) {
	log := logger.WithContext(ctx, r.log)

	model := UserSchema{
		Username: in.Username,
		Email:    in.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("duplicate user in db", zap.String("email", in.Email))
			return nil, pkgerrors.NewAlreadyExistsError("user", "email already exists")
		}
		log.Error("failed to create user in db", zap.Error(err), zap.String("email", in.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// FindMany retrieves every user ordered by id.
func (r *UserRepoPG) FindMany(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}

	return users, nil
}

// FindUnique retrieves a user by id. It returns nil, nil when no row matches.
func (r *UserRepoPG) FindUnique(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(ctx, r.log).Debug("user not found in db", zap.Int64("id", id))
			return nil, nil
		}
		logger.WithContext(ctx, r.log).Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}

// Update writes the supplied patch fields and returns the updated row.
// A missing row fails with a wrapped gorm.ErrRecordNotFound.
func (r *UserRepoPG) Update(ctx context.Context, id int64, patch user.Patch) (*user.User, error) {
	log := logger.WithContext(ctx, r.log)

	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		if err := tx.Model(&UserSchema{}).Where("id = ?", id).Updates(patch.Fields()).Error; err != nil {
			return err
		}
		applied := patch.Apply(*model.toDomain())
		model.Username, model.Email = applied.Username, applied.Email
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("duplicate user in db", zap.Int64("id", id))
			return nil, pkgerrors.NewAlreadyExistsError("user", "email already exists")
		}
		log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user updated in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Delete removes a user by id and returns the row as it was before deletion.
// A missing row fails with a wrapped gorm.ErrRecordNotFound.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) (*user.User, error) {
	log := logger.WithContext(ctx, r.log)

	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}
		return tx.Delete(&UserSchema{}, id).Error
	})
	if err != nil {
		log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info("user deleted in db", zap.Int64("id", id))
	return model.toDomain(), nil
}
