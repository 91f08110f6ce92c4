package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

type Service interface {
	// GenerateAccessToken signs a token for the identity. Tokens are normally
	// issued by the identity provider; this serves tooling and tests.
	GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	now := j.now()
	expiresAt = now.Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  userID,
		"role": string(role),
		"type": "access",
		"iat":  now.Unix(),
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

// IdentityFromClaims builds the caller identity from verified claims. The
// user id is read from "sub", falling back to "user_id". Tokens carrying a
// "type" claim other than "access" are rejected.
func IdentityFromClaims(claims map[string]interface{}) (user.Identity, error) {
	if tokenType, ok := claims["type"]; ok && tokenType != "access" {
		return user.Identity{}, ErrInvalidToken
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		userID, _ = claims["user_id"].(string)
	}
	role, _ := claims["role"].(string)

	identity := user.Identity{UserID: userID, Role: user.Role(role)}
	if err := identity.Validate(); err != nil {
		return user.Identity{}, ErrInvalidToken
	}
	return identity, nil
}
