package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-service/internal/domain/user"
	pkgerrors "user-service/pkg/errors"
	"user-service/pkg/logger"
)

// Repository defines the storage collaborator for users.
// Implementations own id assignment and any uniqueness constraints.
type Repository interface {
	Create(ctx context.Context, in domain.CreateInput) (*domain.User, error)        // Insert and return the record with its id
	FindMany(ctx context.Context) ([]domain.User, error)                            // All records
	FindUnique(ctx context.Context, id int64) (*domain.User, error)                 // nil, nil when absent
	Update(ctx context.Context, id int64, patch domain.Patch) (*domain.User, error) // Apply patch and return the updated record
	Delete(ctx context.Context, id int64) (*domain.User, error)                     // Remove and return the prior record
}

// Service implements Usecase on top of a Repository.
// Every operation makes exactly one repository call.
type Service struct {
	repo Repository  // Storage collaborator
	log  *zap.Logger // Logger for structured logging
}

var _ Usecase = (*Service)(nil)

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// Create stores a new user and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, in domain.CreateInput) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating user", zap.String("username", in.Username), zap.String("email", in.Email))

	u, err := s.repo.Create(ctx, in)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	return u, nil
}

// FindAll returns every stored user. An empty store yields an empty slice.
func (s *Service) FindAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindMany(ctx)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// FindOne returns the user with the given id, or a NotFoundError when none exists.
func (s *Service) FindOne(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)

	u, err := s.repo.FindUnique(ctx, id)
	if err != nil {
		log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if u == nil {
		log.Debug("user not found", zap.Int64("id", id))
		return nil, pkgerrors.NewUserNotFoundError()
	}
	return u, nil
}

// Update applies patch to the user with the given id.
// Missing records are reported by the repository, not checked here.
func (s *Service) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("updating user", zap.Int64("id", id), zap.Bool("username", patch.Username != nil), zap.Bool("email", patch.Email != nil))

	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		log.Error("failed to update user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}

// Remove deletes the user with the given id and returns its prior state.
func (s *Service) Remove(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("deleting user", zap.Int64("id", id))

	u, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}
