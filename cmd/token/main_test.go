package main

import (
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/socialhub/internal/config"
	jwtpkg "steward/socialhub/pkg/jwt"
)

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"--subject", "scheduler", "--ttl", "15m"})
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", opts.Config)
	assert.Equal(t, "scheduler", opts.Subject)
	assert.Equal(t, 15*time.Minute, opts.TTL)

	_, err = parseOptions(nil)
	var ferr *flags.Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, flags.ErrRequired, ferr.Type)
}

func TestMint(t *testing.T) {
	cfg := config.JWTConfig{SigningKey: "test-signing-key", Issuer: "socialhub", TokenTTL: time.Hour}

	token, err := mint(cfg, "scheduler", 0)
	require.NoError(t, err)

	claims, err := jwtpkg.NewManager(cfg.SigningKey, cfg.Issuer, cfg.TokenTTL).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "scheduler", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	short, err := mint(cfg, "scheduler", 5*time.Minute)
	require.NoError(t, err)
	claims, err = jwtpkg.NewManager(cfg.SigningKey, cfg.Issuer, cfg.TokenTTL).Validate(short)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestMint_RequiresSigningKey(t *testing.T) {
	_, err := mint(config.JWTConfig{Issuer: "socialhub"}, "scheduler", 0)
	require.ErrorIs(t, err, errNoSigningKey)
}
