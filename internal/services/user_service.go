package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	// CreateUser creates an account on behalf of the user callerID. Admins
	// may only create plain users.
	CreateUser(ctx context.Context, callerID uint, input CreateUserInput) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	// EnsureAdmin creates the super admin account on an empty database.
	EnsureAdmin(ctx context.Context, password string) error
}

type CreateUserInput struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role"`
	EmployeeID *uint  `json:"employee_id"`
}

const adminUsername = "admin"

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) CreateUser(ctx context.Context, callerID uint, input CreateUserInput) (*models.User, error) {
	role, err := userRole(input.Role)
	if err != nil {
		return nil, err
	}
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !caller.CanGrant(role) {
		return nil, fmt.Errorf("%w: %s cannot create %s accounts", ErrForbidden, caller.Role, role)
	}
	input.Role = string(role)
	return s.create(ctx, input)
}

func userRole(role string) (models.UserRole, error) {
	if role == "" {
		return models.Users, nil
	}
	switch r := models.UserRole(role); r {
	case models.SuperAdmin, models.Admin, models.Users:
		return r, nil
	}
	return "", invalid("unknown role %q", role)
}

func (s *userService) create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, invalid("username %q is taken", input.Username)
	} else if !isNotFound(err) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		EmployeeID:   input.EmployeeID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, password string) error {
	_, err := s.users.GetByUsername(ctx, adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if password == "" {
		return errors.New("ADMIN_PASSWORD is required to create the admin account")
	}

	_, err = s.create(ctx, CreateUserInput{
		Username: adminUsername,
		Email:    "admin@localhost",
		Password: password,
		Role:     string(models.SuperAdmin),
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("Created %s account", adminUsername)
	return nil
}
