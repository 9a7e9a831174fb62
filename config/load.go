package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

func Load() (App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return App{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
