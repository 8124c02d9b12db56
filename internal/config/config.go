package config

import (
	"time"

	"github.com/maxviazov/wealth-balance-service/internal/logger"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// PostgresConfig holds connection and pool settings. Pool lifetimes are seconds;
// PoolTimeout bounds each statement including the wait for a free connection.
type PostgresConfig struct {
	Host              string        `mapstructure:"host" validate:"required"`
	Port              int           `mapstructure:"port" validate:"min=1,max=65535"`
	User              string        `mapstructure:"user" validate:"required"`
	Password          string        `mapstructure:"password" validate:"required"`
	DBName            string        `mapstructure:"db" validate:"required"`
	SSLMode           string        `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32         `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32         `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int           `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int           `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int           `mapstructure:"health_check_period" validate:"gte=0"`
	PoolTimeout       time.Duration `mapstructure:"pool_timeout"`
}

type PaginationConfig struct {
	MaxPageSize     int  `mapstructure:"max_page_size"`
	IntersectBounds bool `mapstructure:"intersect_bounds"`
}
