package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizz/internal/config"
)

const serviceName = "quizz"

// New builds the application logger: JSON at info level in production,
// human readable console output at debug level elsewhere.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	zcfg.InitialFields = map[string]any{
		"service": serviceName,
		"env":     cfg.Env,
	}

	lg, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return lg, nil
}
