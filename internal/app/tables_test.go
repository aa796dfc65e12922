package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/agentic-quiz/internal/config"
	"github.com/gokatarajesh/agentic-quiz/internal/leaderboard"
)

func TestOpenTablesFallsBackToMemory(t *testing.T) {
	tables, err := OpenTables(context.Background(), config.Sheets{}, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, tables.Remote)

	rows, err := tables.Leaderboard.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{leaderboard.Header}, rows)
}

func TestOpenTablesRejectsBadCredentials(t *testing.T) {
	_, err := OpenTables(context.Background(), config.Sheets{CredentialsJSON: "{}"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewBuildsInMemoryApplication(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	instance, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, instance.redis)
	assert.NotNil(t, instance.http.Handler)
}
