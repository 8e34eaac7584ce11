package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
)

type Claims struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	CompanyID   *string     `json:"companyId,omitempty"`
	CompanyName *string     `json:"companyName,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(user domain.User) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		CompanyID:   user.CompanyID,
		CompanyName: user.CompanyName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, expiresAt, nil
}

func (i *Issuer) Parse(raw string) (Session, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, apperrors.NewUnauthorizedError("session expired")
		}
		return Session{}, apperrors.NewUnauthorizedError("invalid session token")
	}
	if !token.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return Session{}, apperrors.NewUnauthorizedError("invalid session token")
	}

	return New(domain.User{
		ID:          claims.Subject,
		Name:        claims.Name,
		Email:       claims.Email,
		Role:        claims.Role,
		CompanyID:   claims.CompanyID,
		CompanyName: claims.CompanyName,
	}), nil
}
