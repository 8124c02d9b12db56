package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// secrets are never expected in the YAML file; the bare POSTGRES_* names are
// accepted as a fallback for docker-style environments.
var secrets = map[string][]string{
	"postgres.user":     {"APP_POSTGRES_USER", "POSTGRES_USER"},
	"postgres.password": {"APP_POSTGRES_PASSWORD", "POSTGRES_PASSWORD"},
	"postgres.db":       {"APP_POSTGRES_DB", "POSTGRES_DB"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "wealth-balance-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", "10s")
	v.SetDefault("app.request_timeout", "15s")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.pool_timeout", "10s")

	v.SetDefault("pagination.max_page_size", 100)
	v.SetDefault("pagination.intersect_bounds", false)
}

// Load reads the YAML file at path and applies APP_* environment overrides.
// An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	for key, envs := range secrets {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}


// Validate checks the sections every command needs. Postgres is checked by
// PostgresConfig.Validate when a command actually connects.
func (c *Config) Validate() error {
	return validateSections(c.App)
}

// Validate checks the connection settings and secrets.
func (c PostgresConfig) Validate() error {
	return validateSections(c)
}

func validateSections(sections ...any) error {
	v := validator.New()
	var problems []string
	for _, section := range sections {
		err := v.Struct(section)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config validation error: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("config validation error: %s", strings.Join(problems, "; "))
	}
	return nil
}
