package service

import (
	"context"
	"errors"
	"time"

	userserrors "futsal/internal/users/errors"
	"futsal/internal/users/repository"
	"futsal/internal/users/validator"
	"futsal/pkg/auth"
	"futsal/pkg/config"
	apperrors "futsal/pkg/errors"
	"futsal/pkg/logger"
	"futsal/pkg/model"
	"futsal/pkg/sanitizer"
	"futsal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid username or password"

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Delete(ctx context.Context, id string) error
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResult, error)
}

type TokenIssuer interface {
	Issue(id auth.Identity) (string, time.Time, error)
}

type userService struct {
	repo        repository.UserRepository
	validator   *validator.UserValidator
	issuer      TokenIssuer
	log         *logger.Logger
	phoneRegion string
	bcryptCost  int
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	issuer TokenIssuer,
	cfg *config.Config,
) UserService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &userService{
		repo:        repo,
		validator:   validator,
		issuer:      issuer,
		log:         cfg.Log,
		phoneRegion: cfg.PhoneRegion,
		bcryptCost:  cost,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := s.validator.ValidateRegistration(req); err != nil {
		s.log.Warn("Registration validation failed", "error", err)
		return nil, validation.ToAppError("User validation failed", err)
	}

	role := sanitizer.NormalizeRole(req.Role)
	if role == "" {
		role = model.DefaultRole
	}

	user := &model.User{
		Username:  sanitizer.TrimAndNormalize(req.Username),
		Phone:     sanitizer.PhoneOrRaw(req.Phone, s.phoneRegion),
		FieldName: sanitizer.NormalizeFieldName(req.FieldName),
		Role:      role,
	}

	if err := s.validator.Validate(user); err != nil {
		s.log.Warn("User validation failed", "error", err)
		return nil, validation.ToAppError("User validation failed", err)
	}

	if err := s.ensureUnique(ctx, user); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}
	user.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, userserrors.ErrDuplicateUsername):
			return nil, apperrors.Conflict("Username already exists")
		case errors.Is(err, userserrors.ErrDuplicatePhone):
			return nil, apperrors.Conflict("Phone number already exists")
		}
		s.log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.log.Info("User registered successfully",
		"id", user.ID,
		"username", user.Username,
		"role", user.Role,
	)
	return user, nil
}

// ensureUnique gives the friendly conflict messages up front. The unique
// indexes still catch a concurrent registration that slips past it.
func (s *userService) ensureUnique(ctx context.Context, user *model.User) error {
	if _, err := s.repo.FindByUsername(ctx, user.Username); err == nil {
		return apperrors.Conflict("Username already exists")
	} else if !errors.Is(err, userserrors.ErrNotFound) {
		s.log.Error("Failed to check username", "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	if _, err := s.repo.FindByPhone(ctx, user.Phone); err == nil {
		return apperrors.Conflict("Phone number already exists")
	} else if !errors.Is(err, userserrors.ErrNotFound) {
		s.log.Error("Failed to check phone number", "error", err)
		return apperrors.Internal("Failed to create user", err)
	}
	return nil
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateNotFound(err, "Failed to retrieve user")
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return s.translateNotFound(err, "Failed to retrieve user")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translateNotFound(err, "Failed to delete user")
	}

	s.log.Info("User deleted successfully", "id", id)
	return nil
}

func (s *userService) translateNotFound(err error, message string) error {
	if errors.Is(err, userserrors.ErrNotFound) {
		return apperrors.NotFound("User")
	}
	s.log.Error(message, "error", err)
	return apperrors.Internal(message, err)
}

// Login answers the same Unauthorized for an unknown username and a wrong
// password.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResult, error) {
	username := sanitizer.TrimAndNormalize(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			s.log.Warn("Login attempt for unknown user", "username", username)
			return nil, apperrors.Unauthorized(invalidCredentials)
		}
		s.log.Error("Failed to look up user", "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn("Login attempt with wrong password", "username", username)
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	token, expiresAt, err := s.issuer.Issue(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		s.log.Error("Failed to issue token", "error", err, "user_id", user.ID)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	s.log.Info("User logged in", "id", user.ID, "username", user.Username)
	return &model.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
