package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/storage"
)

// session.Manager interface implementation
var _ Manager = (*JWT)(nil)

// JWT sessions are stateless; every read re-checks that the admin is still active
type JWT struct {
	issuer        string
	secretKey     []byte
	tokenLifetime time.Duration
	admins        storage.AdminRepository
	now           func() time.Time
}

func (svc *JWT) LoggerComponent() string {
	return "Session.JWT"
}

func NewJWT(secretKey string, admins storage.AdminRepository, opts ...JWTOption) *JWT {
	s := &JWT{
		secretKey:     []byte(secretKey),
		admins:        admins,
		tokenLifetime: 8 * time.Hour,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type JWTOption func(s *JWT)

func WithIssuer(issuer string) JWTOption {
	return func(s *JWT) {
		s.issuer = issuer
	}
}

func WithTokenLifetime(d time.Duration) JWTOption {
	return func(s *JWT) {
		if d > 0 {
			s.tokenLifetime = d
		}
	}
}

func WithClock(now func() time.Time) JWTOption {
	return func(s *JWT) {
		s.now = now
	}
}

// Create method of session.Creator implementation
func (svc *JWT) Create(ctx context.Context, a *model.Admin) (string, error) {
	l := logger.Get(ctx, svc)
	l.Debug().Int64("admin_id", a.ID).Msg("Create")

	now := svc.now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Subject:   strconv.FormatInt(a.ID, 10),
			IssuedAt:  now.Unix(),
			NotBefore: now.Unix(),
			ExpiresAt: now.Add(svc.tokenLifetime).Unix(),
			Issuer:    svc.issuer,
		},
		AdminID:  a.ID,
		Username: a.Username,
		Role:     a.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	strToken, err := token.SignedString(svc.secretKey)
	if err != nil {
		l.Error().Err(err).Send()

		return "", fmt.Errorf("jwt encode: %w", err)
	}

	return strToken, nil
}

// Read method of session.Reader implementation
func (svc *JWT) Read(ctx context.Context, tokenString string) (*model.Admin, error) {
	l := logger.Get(ctx, svc)
	l.Debug().Msg("Read request")

	c := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return svc.secretKey, nil
	})
	if err != nil {
		l.Debug().Err(err).Msg("ParseWithClaims failed")

		return nil, ErrInvalidToken
	}

	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || c.AdminID == 0 {
		l.Debug().Msg("Invalid token")

		return nil, ErrInvalidToken
	}

	if svc.issuer != "" && !c.VerifyIssuer(svc.issuer, true) {
		l.Debug().Str("issuer", c.Issuer).Msg("Foreign issuer")

		return nil, ErrInvalidToken
	}

	a, err := svc.admins.ReadActive(ctx, c.AdminID)
	if errors.Is(err, apperr.ErrNotFound) {
		l.Debug().Int64("admin_id", c.AdminID).Msg("Admin is not active")

		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("admin %d lookup: %w", c.AdminID, err)
	}

	return a, nil
}
