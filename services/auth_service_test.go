package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gachigayo/services/backend"
)

func TestAuthService_Login_ValidatesForm(t *testing.T) {
	called := false
	stub := &stubBackend{
		loginFn: func(ctx context.Context, phone, password string) (*backend.TokenPair, error) {
			called = true
			return nil, nil
		},
	}
	svc := NewAuthService(stub, NewSessionService(nil, 0))

	var vErr *ValidationError

	_, err := svc.Login(context.Background(), &LoginForm{Phone: "", Password: "pw", Role: RoleSenior})
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Login(context.Background(), &LoginForm{Phone: "010-1234-5678", Password: "", Role: RoleSenior})
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Login(context.Background(), &LoginForm{Phone: "010-1234-5678", Password: "pw", Role: "admin"})
	require.ErrorAs(t, err, &vErr)

	// None of the rejects reached the backend.
	assert.False(t, called)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	stub := &stubBackend{
		loginFn: func(ctx context.Context, phone, password string) (*backend.TokenPair, error) {
			return nil, &backend.APIError{StatusCode: 401, Detail: "전화번호 또는 비밀번호가 올바르지 않아요."}
		},
	}
	svc := NewAuthService(stub, NewSessionService(nil, 0))

	_, err := svc.Login(context.Background(), &LoginForm{
		Phone:    "010-1234-5678",
		Password: "wrong",
		Role:     RoleHelper,
	})

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "전화번호 또는 비밀번호가 올바르지 않아요.", apiErr.Message())
}
