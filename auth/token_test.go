package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_api/auth"
)

const testSecret = "unit-test-secret"

func Test_Token_Roundtrip(t *testing.T) {
	token, err := auth.NewToken("user-123", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func Test_ParseToken_Rejections(t *testing.T) {
	valid, err := auth.NewToken("user-123", testSecret, time.Hour)
	require.NoError(t, err)

	expired, err := auth.NewToken("user-123", testSecret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired_token", token: expired},
		{name: "wrong_secret", token: func() string {
			tk, _ := auth.NewToken("user-123", "some-other-secret", time.Hour)
			return tk
		}()},
		{name: "malformed_token", token: "not.a.jwt"},
		{name: "empty_token", token: ""},
		{name: "tampered_signature", token: valid + "xx"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subject, err := auth.ParseToken(tc.token, testSecret)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}
