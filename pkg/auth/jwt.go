package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-admin/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token revoked")
)

type JWTService interface {
	GenerateAccessToken(session model.Session) (string, time.Time, error)
	ValidateToken(token string) (*model.TokenClaims, error)
	Revoke(claims *model.TokenClaims)
}

type jwtService struct {
	secret  []byte
	expiry  time.Duration
	revoked *cache.Cache
	now     func() time.Time
}

// NewJWTService signs HS256 tokens. Revoked token ids are remembered until
// the token would have expired anyway.
func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{
		secret:  []byte(secret),
		expiry:  expiry,
		revoked: cache.New(expiry, 10*time.Minute),
		now:     time.Now,
	}
}

func (s *jwtService) GenerateAccessToken(session model.Session) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)

	claims := model.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   session.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:       session.Email,
		Name:        session.Name,
		IsAdmin:     session.IsAdmin,
		TherapistID: session.TherapistID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *jwtService) ValidateToken(token string) (*model.TokenClaims, error) {
	claims := &model.TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if _, revoked := s.revoked.Get(claims.ID); revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

func (s *jwtService) Revoke(claims *model.TokenClaims) {
	if claims == nil || claims.ID == "" {
		return
	}
	ttl := cache.DefaultExpiration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return
		}
	}
	s.revoked.Set(claims.ID, struct{}{}, ttl)
}
