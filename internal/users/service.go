package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightsmile/clinic-backend/internal/domain"
)

const tokenLifetime = 24 * time.Hour

// Claims is the JWT payload issued at login.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	repo      Repository
	jwtSecret []byte
}

func NewService(repo Repository, jwtSecret string) *Service {
	return &Service{repo: repo, jwtSecret: []byte(jwtSecret)}
}

// Register creates a patient account. Staff accounts are created
// through the admin CRUD, never through self-registration.
func (s *Service) Register(ctx context.Context, name, email, phone, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ValidationError{Field: "email", Msg: "must be a valid address"}
	}
	if len(password) < 8 {
		return nil, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: string(hash),
		Role:         RolePatient,
	}
	return s.repo.Create(ctx, u)
}

// Login verifies credentials and returns the user plus a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *Service) issueToken(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// CreateStaff lets an admin create doctor/staff/admin accounts.
func (s *Service) CreateStaff(ctx context.Context, name, email, phone, password string, role Role) (*User, error) {
	if !ValidRole(role) {
		return nil, domain.ValidationError{Field: "role", Msg: fmt.Sprintf("%q is not a known role", role)}
	}
	u, err := s.Register(ctx, name, email, phone, password)
	if err != nil {
		return nil, err
	}
	if role == RolePatient {
		return u, nil
	}
	u.Role = role
	return s.repo.Update(ctx, u)
}

func (s *Service) Update(ctx context.Context, u User) (*User, error) {
	if !ValidRole(u.Role) {
		return nil, domain.ValidationError{Field: "role", Msg: fmt.Sprintf("%q is not a known role", u.Role)}
	}
	current, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	current.Name = strings.TrimSpace(u.Name)
	current.Email = strings.ToLower(strings.TrimSpace(u.Email))
	current.Phone = strings.TrimSpace(u.Phone)
	current.Role = u.Role
	return s.repo.Update(ctx, current)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
