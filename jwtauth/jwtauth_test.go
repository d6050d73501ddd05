package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("u_01G0EZ1XTM37C5X11SQTDNCTM1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u_01G0EZ1XTM37C5X11SQTDNCTM1", claims.UserID())
}

func TestIssuer_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("u_01G0EZ1XTM37C5X11SQTDNCTM1")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestIssuer_WrongSecret(t *testing.T) {
	token, err := NewIssuer("secret-a", time.Hour).Issue("u_01G0EZ1XTM37C5X11SQTDNCTM1")
	require.NoError(t, err)

	_, err = NewIssuer("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestIssuer_Garbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not-a-token")
	assert.Error(t, err)
}
