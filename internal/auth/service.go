package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"
	"sentinel-dca-go/internal/apierrors"
	"sentinel-dca-go/internal/logger"
)

const (
	minPasswordLength = 8
	idAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength          = 12
)

type Authenticator interface {
	SignUp(email, password, name string) (*User, error)
	SignIn(email, password string) (string, error)
	SignOut(token string) error
	ValidateToken(token string) (*Claims, error)
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Service keeps users and revoked token ids in memory.
type Service struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time

	mu      sync.RWMutex
	users   map[string]*User     // by normalised email
	revoked map[string]time.Time // jti -> token expiry
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
		users:   map[string]*User{},
		revoked: map[string]time.Time{},
	}
}

func normalizeEmail(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

func (s *Service) SignUp(email, password, name string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apierrors.ErrMissingRequiredData, "email and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, NewAuthError(ErrWeakPassword, apierrors.ErrWeakPassword, fmt.Sprintf("password must have at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, NewAuthError(err, apierrors.ErrInternalServer, "could not hash password")
	}
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return nil, NewAuthError(err, apierrors.ErrInternalServer, "could not generate user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return nil, NewAuthError(ErrUserAlreadyExists, apierrors.ErrUserAlreadyExists, "email already registered")
	}
	u := &User{
		ID:           id,
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	s.users[email] = u

	logger.Component("auth").WithField("user_id", id).Info("user signed up")
	out := *u
	return &out, nil
}

// Seed registers a bootstrap user; an existing account is left untouched.
func (s *Service) Seed(email, password string) error {
	if email == "" {
		return nil
	}
	_, err := s.SignUp(email, password, "Administrator")
	if err != nil && !errors.Is(err, ErrUserAlreadyExists) {
		return err
	}
	return nil
}

func (s *Service) SignIn(email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apierrors.ErrMissingRequiredData, "email and password are required")
	}

	s.mu.RLock()
	u, ok := s.users[email]
	s.mu.RUnlock()
	if !ok {
		return "", NewAuthError(ErrInvalidCredentials, apierrors.ErrInvalidCredentials, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", NewAuthError(ErrInvalidCredentials, apierrors.ErrInvalidCredentials, "")
	}

	now := s.now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", NewAuthError(err, apierrors.ErrInternalServer, "could not sign token")
	}
	return token, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apierrors.ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apierrors.ErrInvalidToken, "")
	}

	s.mu.RLock()
	_, revoked := s.revoked[claims.ID]
	s.mu.RUnlock()
	if revoked {
		return nil, NewAuthError(ErrInvalidToken, apierrors.ErrInvalidToken, "token revoked")
	}
	return claims, nil
}

// SignOut revokes the token until it would have expired anyway.
func (s *Service) SignOut(tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}
