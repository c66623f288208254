package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	const secret = "cli-test-secret"
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("JWT_EXPIRATION_HOURS", "1")

	out, err := executeRoot(t, "token", "--email", "ada@example.com", "--name", "Ada")
	require.NoError(t, err)

	claims, err := server.NewJWTService(config.JWTConfig{Secret: secret, ExpirationHours: 1}).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := executeRoot(t, "token", "--email", "ada@example.com")
	assert.ErrorContains(t, err, "JWT_SECRET")
}
