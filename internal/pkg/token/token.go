package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/LarsBecker/StoryPress/internal/pkg/env"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("token used for wrong purpose")
)

// Claims carried by both access and refresh tokens. TokenType distinguishes
// the two so a refresh token can never authenticate a request directly.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsAuthor  bool   `json:"is_author"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is the access/refresh token pair issued at login.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Manager signs and verifies the JWT pair.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// NewManagerFromEnv builds a Manager from JWT_* environment variables.
func NewManagerFromEnv() *Manager {
	accessMinutes, err := strconv.Atoi(env.GetEnv("JWT_ACCESS_EXPIRE_MINUTES", "30"))
	if err != nil {
		accessMinutes = 30
	}
	refreshHours, err := strconv.Atoi(env.GetEnv("JWT_REFRESH_EXPIRE_HOURS", "168"))
	if err != nil {
		refreshHours = 168
	}

	return NewManager(
		env.GetEnv("JWT_SECRET", "storypress-dev-secret"),
		time.Duration(accessMinutes)*time.Minute,
		time.Duration(refreshHours)*time.Hour,
	)
}

// IssuePair signs a fresh access/refresh pair for the given user identity.
// The refresh token carries a uuid JTI so individual tokens stay
// distinguishable in logs.
func (m *Manager) IssuePair(userID uint, email string, isAdmin, isAuthor bool) (*Pair, error) {
	access, err := m.sign(userID, email, isAdmin, isAuthor, TypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(userID, email, isAdmin, isAuthor, TypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

func (m *Manager) sign(userID uint, email string, isAdmin, isAuthor bool, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		IsAdmin:   isAdmin,
		IsAuthor:  isAuthor,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseAccess verifies an access token and returns its claims.
func (m *Manager) ParseAccess(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TypeAccess)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (m *Manager) ParseRefresh(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TypeRefresh)
}

func (m *Manager) parse(tokenString, wantType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}
