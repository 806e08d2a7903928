package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests mutate process environment and cannot run in parallel.

func TestLoadCredentials_FromEnv(t *testing.T) {
	t.Setenv("MT5_LOGIN", "5012345")
	t.Setenv("MT5_PASSWORD", "secret")
	t.Setenv("MT5_SERVER", "Demo-Server")

	c, err := LoadCredentials(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Credentials{Login: 5012345, Password: "secret", Server: "Demo-Server"}, c)
}

func TestLoadCredentials_FromDotEnv(t *testing.T) {
	t.Setenv("MT5_LOGIN", "")
	t.Setenv("MT5_PASSWORD", "")
	t.Setenv("MT5_SERVER", "")
	os.Unsetenv("MT5_LOGIN")
	os.Unsetenv("MT5_PASSWORD")
	os.Unsetenv("MT5_SERVER")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MT5_LOGIN=777\nMT5_PASSWORD=pw\nMT5_SERVER=Live-1\n"), 0o600))

	c, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, int64(777), c.Login)
	assert.Equal(t, "Live-1", c.Server)
}

func TestLoadCredentials_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("MT5_LOGIN", "")
	t.Setenv("MT5_PASSWORD", "pw")
	t.Setenv("MT5_SERVER", "srv")
	_, err := LoadCredentials(missing)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "MT5_LOGIN")

	t.Setenv("MT5_LOGIN", "abc")
	_, err = LoadCredentials(missing)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCredentials)
}
