package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
)

type adminsStub map[int64]*model.Admin

func (s adminsStub) ReadActive(_ context.Context, id int64) (*model.Admin, error) {
	if a, ok := s[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("admin %d: %w", id, apperr.ErrNotFound)
}

func TestJWT_CreateRead(t *testing.T) {
	admin := &model.Admin{ID: 9, Username: "ops", Role: "admin"}
	svc := NewJWT("secret", adminsStub{9: admin}, WithIssuer("savingsdesk"))

	token, err := svc.Create(context.Background(), admin)
	require.NoError(t, err)

	got, err := svc.Read(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, admin, got)
}

func TestJWT_Read(t *testing.T) {
	admin := &model.Admin{ID: 9, Username: "ops"}

	issue := func(svc *JWT, a *model.Admin) string {
		token, err := svc.Create(context.Background(), a)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "garbage",
			token: func() string { return "not-a-token" },
		},
		{
			name: "wrong secret",
			token: func() string {
				return issue(NewJWT("other", adminsStub{}, WithIssuer("savingsdesk")), admin)
			},
		},
		{
			name: "expired",
			token: func() string {
				past := func() time.Time { return time.Now().Add(-10 * time.Hour) }
				return issue(NewJWT("secret", adminsStub{}, WithIssuer("savingsdesk"), WithClock(past)), admin)
			},
		},
		{
			name: "foreign issuer",
			token: func() string {
				return issue(NewJWT("secret", adminsStub{}, WithIssuer("elsewhere")), admin)
			},
		},
		{
			name: "disabled admin",
			token: func() string {
				return issue(NewJWT("secret", adminsStub{}, WithIssuer("savingsdesk")), &model.Admin{ID: 10})
			},
		},
	}

	svc := NewJWT("secret", adminsStub{9: admin}, WithIssuer("savingsdesk"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Read(context.Background(), tt.token())
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

type failingAdmins struct {
	err error
}

func (s failingAdmins) ReadActive(context.Context, int64) (*model.Admin, error) {
	return nil, s.err
}

func TestJWT_Read_StoreFailure(t *testing.T) {
	admin := &model.Admin{ID: 9, Username: "ops"}
	storeErr := fmt.Errorf("select: %w: context deadline exceeded", apperr.ErrUnavailable)
	svc := NewJWT("secret", failingAdmins{err: storeErr}, WithIssuer("savingsdesk"))

	token, err := svc.Create(context.Background(), admin)
	require.NoError(t, err)

	_, err = svc.Read(context.Background(), token)
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}
