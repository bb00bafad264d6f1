package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "surgishop-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "SurgiShop", cfg.App.DefaultCompany)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "surgishop", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Redis.BalanceTTL)
		assert.Equal(t, 150*time.Millisecond, cfg.Rules.ReceiptDebounce)
		assert.Equal(t, 5*time.Second, cfg.Rules.LookupTimeout)
		assert.Equal(t, 30*time.Minute, cfg.Rules.SessionTTL)
	})

	t.Run("loads values from environment variables with SURGI prefix", func(t *testing.T) {
		t.Setenv("SURGI_APP_NAME", "test-app")
		t.Setenv("SURGI_APP_PORT", "9000")
		t.Setenv("SURGI_APP_DEFAULT_COMPANY", "SurgiShop West")
		t.Setenv("SURGI_DATABASE_HOST", "testdb.local")
		t.Setenv("SURGI_DATABASE_PORT", "5433")
		t.Setenv("SURGI_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("SURGI_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("SURGI_REDIS_ENABLED", "true")
		t.Setenv("SURGI_RULES_RECEIPT_DEBOUNCE", "250ms")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "SurgiShop West", cfg.App.DefaultCompany)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, 250*time.Millisecond, cfg.Rules.ReceiptDebounce)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		t.Setenv("SURGI_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})
}

func TestFromViper(t *testing.T) {
	t.Run("sqlite driver", func(t *testing.T) {
		v := viper.New()
		v.Set("database.driver", "sqlite")
		v.Set("database.path", ":memory:")

		cfg, err := fromViper(v)
		require.NoError(t, err)
		assert.Equal(t, ":memory:", cfg.Database.DSN())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		v := viper.New()
		v.Set("database.max_open_conns", 5)
		v.Set("database.max_idle_conns", 10)

		_, err := fromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("zero advisory wait is kept", func(t *testing.T) {
		v := viper.New()
		v.Set("rules.advisory_wait", "0s")

		cfg, err := fromViper(v)
		require.NoError(t, err)
		assert.Zero(t, cfg.Rules.AdvisoryWait)
		assert.Equal(t, 150*time.Millisecond, cfg.Rules.ReceiptDebounce)
	})

	t.Run("cors origins split from a comma list", func(t *testing.T) {
		v := viper.New()
		v.Set("http.cors_allow_origins", "https://a.example,https://b.example")

		cfg, err := fromViper(v)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("rate limit needs a positive window", func(t *testing.T) {
		v := viper.New()
		v.Set("http.rate_limit_enabled", true)
		v.Set("http.rate_limit_window", "0s")

		_, err := fromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate_limit")
	})

	t.Run("negative debounce is rejected", func(t *testing.T) {
		v := viper.New()
		v.Set("rules.receipt_debounce", "-1s")

		_, err := fromViper(v)
		assert.Error(t, err)
	})
}

func TestValidate_Production(t *testing.T) {
	base := func() *Config {
		v := viper.New()
		cfg, err := fromViper(v)
		require.NoError(t, err)
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "sqlite not allowed", mutate: func(c *Config) { c.Database.Driver = "sqlite" }, wantErr: "sqlite"},
		{name: "password required", mutate: func(c *Config) { c.Database.Password = "" }, wantErr: "password"},
		{name: "ssl required", mutate: func(c *Config) { c.Database.SSLMode = "disable" }, wantErr: "sslmode"},
		{name: "no wildcard cors", mutate: func(c *Config) { c.HTTP.CORSAllowOrigins = []string{"*"} }, wantErr: "cors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "secret",
		DBName:   "surgishop",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://app:secret@db:5432/surgishop?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
