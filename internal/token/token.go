package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/unclebandit/crm-backend/internal/errors"
	"github.com/unclebandit/crm-backend/internal/model"
)

// Claims carried by a login token.
type Claims struct {
	UserID   int
	Username string
	Role     model.Role
}

// claims is the internal type used for JWT signing and parsing.
type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Issuer signs and verifies login tokens.
type Issuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{
		Secret: []byte(secret),
		TTL:    24 * time.Hour,
		Now:    time.Now,
	}
}

// Issue creates a signed HS256 token for the user.
func (i *Issuer) Issue(u *model.User) (string, error) {
	now := i.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL)),
		},
		Username: u.Username,
		Role:     string(u.Role),
	})
	return t.SignedString(i.Secret)
}

// Verify parses a token and returns its claims. Any parse or signature
// failure surfaces as Unauthorized.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (any, error) {
		return i.Secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(i.Now),
	)
	if err != nil {
		return nil, appErrors.NewUnauthorized(fmt.Sprintf("invalid token: %v", err))
	}

	userID, err := strconv.Atoi(parsed.Subject)
	if err != nil {
		return nil, appErrors.NewUnauthorized("invalid token subject")
	}
	role, err := model.ParseRole(parsed.Role)
	if err != nil {
		return nil, appErrors.NewUnauthorized("invalid token role")
	}

	return &Claims{
		UserID:   userID,
		Username: parsed.Username,
		Role:     role,
	}, nil
}
