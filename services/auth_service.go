package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shop-service/models"
	"shop-service/repository"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	FullName string  `json:"full_name" binding:"required,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Password string  `json:"password" binding:"required,min=8"`
}

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a signed token and the authenticated user.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, *ServiceError)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, *ServiceError)
	Profile(ctx context.Context, userID uint) (*models.User, *ServiceError)
}

type authService struct {
	users     repository.UserRepository
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepository, jwtSecret string, logger *zap.Logger) AuthService {
	return &authService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, *ServiceError) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, badRequest("Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("Failed to check email", zap.Error(err))
		return nil, internal("Failed to register")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, internal("Failed to register")
	}

	user := &models.User{
		Name:     req.Name,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, internal("Failed to register")
	}

	token, err := GenerateJWT(s.jwtSecret, user)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, internal("Failed to register")
	}

	return &AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, internal("Failed to login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	token, err := GenerateJWT(s.jwtSecret, user)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, internal("Failed to login")
	}

	return &AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Profile(ctx context.Context, userID uint) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.Uint("user_id", userID), zap.Error(err))
		return nil, internal("Failed to fetch profile")
	}
	return user, nil
}
