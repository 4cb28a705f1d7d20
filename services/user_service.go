package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Session is what a successful login hands back.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) ListUsers(ctx context.Context, caller models.Caller) ([]models.User, error) {
	if err := RequireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		if r, ok := models.ParseRole(string(users[i].Role)); ok {
			users[i].Role = r
		}
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// CreateUser lets an admin add an account with any role.
func (s *UserService) CreateUser(ctx context.Context, caller models.Caller, in CreateUserInput) (*models.User, error) {
	if err := RequireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	return s.create(ctx, in, role)
}

// Register creates a customer account for the public sign-up form.
func (s *UserService) Register(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	return s.create(ctx, in, models.RoleCustomer)
}

func (s *UserService) create(ctx context.Context, in CreateUserInput, role models.Role) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(in.Phone),
		Role:  role,
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, caller models.Caller, id uint, roleName string) (*models.User, error) {
	if err := RequireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	role, ok := models.ParseRole(roleName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, roleName)
	}
	if id == caller.UserID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admins cannot demote themselves", ErrValidation)
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	// MySQL reports zero affected rows when the role is unchanged
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("update user %d role: %w", id, err)
	}
	user.Role = role
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, caller models.Caller, id uint) error {
	if err := RequireRole(caller, models.RoleAdmin); err != nil {
		return err
	}
	if id == caller.UserID {
		return fmt.Errorf("%w: admins cannot delete their own account", ErrValidation)
	}
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

// Login checks email and password and issues a session token. Every
// credential failure looks the same to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	role, ok := models.ParseRole(string(user.Role))
	if !ok {
		return nil, fmt.Errorf("user %d has unknown role %q", user.ID, user.Role)
	}
	user.Role = role

	token, err := utils.GenerateToken(user.ID, string(role), user.Name)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

func normalizeEmail(s string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	if err != nil || addr.Name != "" {
		return "", fmt.Errorf("%w: invalid email %q", ErrValidation, s)
	}
	return strings.ToLower(addr.Address), nil
}

// Logout revokes the token until its natural expiry.
func (s *UserService) Logout(token string) error {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	utils.RevokeToken(token, claims.ExpiresAt.Time)
	return nil
}
