package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khabar-digital/newsroom/config"
	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/pkg/logger"
)

// SessionStore persists the single live refresh token per account.
type SessionStore interface {
	UpdateRefreshToken(ctx context.Context, id uint, refreshToken string) error
}

// Claims carries the account identifier as the subject; nothing else about
// the account goes into the token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService mints and validates the two token classes. The classes sign
// with independent secrets so possession of one cannot forge the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	sessions      SessionStore
}

func NewTokenService(cfg config.JWTConfig, sessions SessionStore) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessExpiry:  cfg.AccessExpiry,
		refreshExpiry: cfg.RefreshExpiry,
		sessions:      sessions,
	}
}

// IssueAccessToken mints a short-lived access token for the account.
func (s *TokenService) IssueAccessToken(accountID uint) (string, error) {
	return s.sign(accountID, s.accessSecret, s.accessExpiry)
}

// IssueRefreshToken mints the longer-lived refresh token.
func (s *TokenService) IssueRefreshToken(accountID uint) (string, error) {
	return s.sign(accountID, s.refreshSecret, s.refreshExpiry)
}

func (s *TokenService) sign(accountID uint, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(accountID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// IssueTokenPair mints both tokens and persists the refresh token onto the
// account record. The three steps are one logical unit: a persistence
// failure means no pair was issued.
func (s *TokenService) IssueTokenPair(ctx context.Context, accountID uint) (*dto.TokenPair, error) {
	accessToken, err := s.IssueAccessToken(accountID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to sign access token").
			Int("account_id", int(accountID)).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.IssueRefreshToken(accountID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to sign refresh token").
			Int("account_id", int(accountID)).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.sessions.UpdateRefreshToken(ctx, accountID, refreshToken); err != nil {
		logger.ErrorWithContext(ctx, "Failed to persist refresh token").
			Int("account_id", int(accountID)).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken checks signature and expiry against the access secret
// and returns the embedded account id. Expired and malformed tokens are not
// distinguished.
func (s *TokenService) ValidateAccessToken(tokenString string) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}

	return uint(id), nil
}

// AccessExpiry exposes the configured access window for cookie lifetimes.
func (s *TokenService) AccessExpiry() time.Duration {
	return s.accessExpiry
}

// RefreshExpiry exposes the configured refresh window for cookie lifetimes.
func (s *TokenService) RefreshExpiry() time.Duration {
	return s.refreshExpiry
}
