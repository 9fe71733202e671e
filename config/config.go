package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Data   DataConfig
	Search SearchConfig
}

type AppConfig struct {
	Port string `validate:"required"`
	Env  string
}

// DataConfig points at optional overrides for the static resources shipped
// with the binary. Empty values select the embedded defaults.
type DataConfig struct {
	ErrorCodesFile string
	SeedFile       string
}

type SearchConfig struct {
	// FilterMatch selects how multiple filter fields combine: "any" (a single
	// matching field passes the record) or "all".
	FilterMatch string `validate:"oneof=any all"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SEARCH_FILTER_MATCH", "any")

	// The .env file is optional; environment variables and defaults cover a
	// bare deployment.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Data: DataConfig{
			ErrorCodesFile: viper.GetString("ERROR_CODES_FILE"),
			SeedFile:       viper.GetString("SEED_FILE"),
		},
		Search: SearchConfig{
			FilterMatch: viper.GetString("SEARCH_FILTER_MATCH"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
