// Package jwt verifies access tokens minted by the HRIS identity service.
// This service never issues tokens.
package jwt

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// ClaimsFromContext reads the verified token placed on ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (user.Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return user.Claims{}, auth.ErrInvalidToken
	}

	var c user.Claims
	if v, ok := claims["user_id"].(string); ok {
		c.UserID = v
	}
	if v, ok := claims["employee_id"].(string); ok {
		c.EmployeeID = v
	}
	if v, ok := claims["role"].(string); ok {
		c.Role = user.Role(v)
	}
	if c.UserID == "" && token.Subject() != "" {
		c.UserID = token.Subject()
	}

	return c, nil
}
