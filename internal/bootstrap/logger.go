package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"steward/socialhub/internal/config"
)

// NewLogger builds a production JSON logger when format is "json" and a
// development console logger otherwise.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}
