// Package auth verifies player bearer tokens and carries the caller's identity through a request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// RoleOperator may force wins
const RoleOperator = "operator"

// Claims represents JWT claims. UserID falls back to the registered subject.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller
type Principal struct {
	UserID   string
	Operator bool
}

// Verifier checks HS256 tokens signed with a shared secret
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify parses a raw token. Every failure is reported as domain.ErrUnauthenticated.
func (v *Verifier) Verify(raw string) (Principal, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return Principal{}, domain.ErrUnauthenticated
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return Principal{}, fmt.Errorf("%w: %s", domain.ErrUnauthenticated, ErrMsgMissingSubject)
	}
	return Principal{UserID: userID, Operator: claims.Role == RoleOperator}, nil
}

// Issue signs a token for userID. Used by the token CLI and tests.
func (v *Verifier) Issue(userID, role string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New(ErrMsgMissingSubject)
	}
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the caller set by the auth middleware
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.UserID != ""
}

const ErrMsgMissingSubject = "token has no user id"
