package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := SignToken(7, "CLIENT", "Cody", "Client", secret)
	require.NoError(t, err)

	caller, err := ParseToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, uint(7), caller.ID)
	require.Equal(t, "CLIENT", caller.Role)
	require.Equal(t, "Cody", caller.Name)
	require.Equal(t, "Client", caller.LastName)
	require.True(t, caller.Authenticated())
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := SignToken(7, "CLIENT", "Cody", "Client", []byte("secret"))
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other"))
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("secret"))
	require.Error(t, err)
}
