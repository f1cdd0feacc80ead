package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/model"
)

// Claims represents JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	Role    string `json:"role"`
	UserID  int64  `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

// Settings configures token signing.
type Settings struct {
	Secret        string
	Issuer        string
	Audience      string
	ExpiryMinutes int
}

// JWT implements model.TokenIssuer backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	issuer    string
	audience  string
	ttl       time.Duration
	now       func() time.Time
}

var _ model.TokenIssuer = (*JWT)(nil)

// NewJWT validates settings and creates a token issuer.
func NewJWT(s Settings) (*JWT, error) {
	switch {
	case s.Secret == "":
		return nil, apperr.Configuration("jwt secret is not configured")
	case s.Issuer == "":
		return nil, apperr.Configuration("jwt issuer is not configured")
	case s.Audience == "":
		return nil, apperr.Configuration("jwt audience is not configured")
	case s.ExpiryMinutes <= 0:
		return nil, apperr.Configuration("jwt expiry must be a positive number of minutes, got %d", s.ExpiryMinutes)
	}

	return &JWT{
		secretKey: []byte(s.Secret),
		issuer:    s.Issuer,
		audience:  s.Audience,
		ttl:       time.Duration(s.ExpiryMinutes) * time.Minute,
		now:       time.Now,
	}, nil
}

// Issue signs a token for the given principal.
func (j *JWT) Issue(email string, role model.Role, userID int64, isAdmin bool) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Role:    role.String(),
		UserID:  userID,
		IsAdmin: isAdmin,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Parse validates a token and returns its claims.
func (j *JWT) Parse(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.Claims{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return model.Claims{}, fmt.Errorf("access token is invalid")
	}

	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return model.Claims{}, fmt.Errorf("access token carries %w", err)
	}
	if claims.IsAdmin != (role == model.RoleAdmin) {
		return model.Claims{}, fmt.Errorf("admin flag does not match role %s", role)
	}

	return model.Claims{
		TokenID: claims.ID,
		Email:   claims.Subject,
		Role:    role,
		UserID:  claims.UserID,
		IsAdmin: claims.IsAdmin,
	}, nil
}
