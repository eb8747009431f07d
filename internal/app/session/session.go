package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
)

var ErrInvalidToken = fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)

// Claims of an admin bearer token
type Claims struct {
	jwt.StandardClaims
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Creator interface {
	// Create signs a token for the admin
	Create(ctx context.Context, a *model.Admin) (string, error)
}

type Reader interface {
	// Read validates the token and returns the admin it was issued to
	Read(ctx context.Context, token string) (*model.Admin, error)
}

type Manager interface {
	Creator
	Reader
}
