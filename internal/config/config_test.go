package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"APP_ENV",
		"TELEGRAM_API_TOKEN",
		"DATABASE_URL",
		"HTTP_ADDR",
		"QUESTIONS_SOURCE",
		"QUESTIONS_PATH",
		"QUESTIONS_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, CommandServe, cfg.Command)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, SourceFile, cfg.Questions.Source)
	assert.Equal(t, "questions.json", cfg.Questions.Path)
	assert.Equal(t, 5*time.Second, cfg.Questions.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTimeout)
	assert.Equal(t, "@every 5m", cfg.Sessions.PruneSchedule)
	assert.Equal(t, 20, cfg.DB.MaxConnections)
	assert.False(t, cfg.TelegramEnabled())

	_, err = cfg.DB.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoad_EnvironmentAndFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load([]string{
		"--questions.source=http",
		"--questions.url=http://localhost/questions.json",
		"--http.addr=:9090",
	})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, SourceHTTP, cfg.Questions.Source)
	assert.Equal(t, "http://localhost/questions.json", cfg.Questions.URL)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "quizz.yaml")
	content := "questions:\n  path: data/q.json\nsessions:\n  idle_timeout: 1h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load([]string{"--config", path})
	require.NoError(t, err)

	assert.Equal(t, "data/q.json", cfg.Questions.Path)
	assert.Equal(t, time.Hour, cfg.Sessions.IdleTimeout)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		err  error
	}{
		{
			name: "http source without url",
			args: []string{"--questions.source=http"},
			err:  ErrMissingQuestionsURL,
		},
		{
			name: "postgres source without database",
			args: []string{"--questions.source=postgres"},
			err:  ErrMissingEnvironmentVariables,
		},
		{
			name: "unknown source",
			env:  map[string]string{"QUESTIONS_SOURCE": "ftp"},
			err:  ErrUnknownSource,
		},
		{
			name: "seed without database",
			args: []string{"seed"},
			err:  ErrMissingEnvironmentVariables,
		},
		{
			name: "unknown command",
			args: []string{"migrate"},
			err:  ErrUnknownCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(tt.args)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad_Seed(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/quizz")

	cfg, err := Load([]string{"seed", "--questions.path=seed.json"})
	require.NoError(t, err)

	assert.Equal(t, CommandSeed, cfg.Command)
	assert.Equal(t, "seed.json", cfg.Questions.Path)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/quizz", dsn)
}
