package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/daily"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.ListenDuration)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, DefaultShareFooter, cfg.ShareFooter)
	assert.True(t, cfg.Epoch().Equal(daily.DefaultEpoch))
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("DEEPWORDLE_EPOCH", "2022-01-01")
	t.Setenv("WORDS_ANSWERS_FILE", "/tmp/answers.txt")
	t.Setenv("LISTEN_DURATION", "3s")
	t.Setenv("SHARE_FOOTER", "#mine")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "2022-01-01", daily.DateKey(cfg.Epoch()))
	assert.Equal(t, "/tmp/answers.txt", cfg.Words().AnswersFile)
	assert.Equal(t, "", cfg.Words().AllowedFile)
	assert.Equal(t, 3*time.Second, cfg.ListenDuration)
	assert.Equal(t, "#mine", cfg.ShareFooter)
}

func TestParseInvalid(t *testing.T) {
	t.Run("epoch", func(t *testing.T) {
		t.Setenv("DEEPWORDLE_EPOCH", "yesterday")
		_, err := Parse()
		assert.Error(t, err)
	})
	t.Run("duration", func(t *testing.T) {
		t.Setenv("LISTEN_DURATION", "0s")
		_, err := Parse()
		assert.Error(t, err)
	})
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("SESSION_TOKEN_TTL", "forever")
		_, err := Parse()
		assert.Error(t, err)
	})
}
