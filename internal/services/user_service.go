package services

import (
	"context"
	"errors"

	"society-backend/internal/auth"
	"society-backend/internal/cache"
	"society-backend/internal/models"
)

type UserService struct {
	Users      UserStore
	JWTManager *auth.JWTManager
}

func NewUserService(users UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Users:      users,
		JWTManager: jwtManager,
	}
}

// Signup creates a member account with a hashed password
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}

	existingUser, _ := s.Users.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         models.RoleMember,
		FlatNumber:   req.FlatNumber,
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}

// Login authenticates a user and returns a JWT token. A Redis-side
// credential cache skips the bcrypt comparison on repeat logins.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	if userID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); ok {
		if user, err := s.Users.Get(ctx, userID); err == nil {
			return s.issueToken(user)
		}
	}

	user, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errors.New("invalid email or password")
	}

	cache.CacheAuth(ctx, req.Email, req.Password, user.ID)
	return s.issueToken(user)
}

func (s *UserService) issueToken(user *models.User) (*models.AuthResponse, error) {
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}
