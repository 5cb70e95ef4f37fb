package config

import (
	"github.com/spf13/viper"

	"github.com/rpattn/rximport/internal/db"
)

// Config is the full application configuration.
type Config struct {
	ListenAddr     string
	AllowedOrigins []string
	MaxUploadBytes int64
	MigrationsPath string
	Database       db.Config
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadBytes: 32 << 20,
		MigrationsPath: "./migrations",
		Database:       db.DefaultConfig(),
	}
}

// Load reads config.yaml from configPath and applies RX_-prefixed
// environment overrides (RX_DATABASE_HOST, RX_SERVER_LISTEN_ADDR, ...).
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("RX")

	v.BindEnv("server.listen_addr")
	v.BindEnv("server.max_upload_bytes")
	v.BindEnv("migrations.path")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")

	// Config file is optional; defaults plus env overrides are enough.
	_ = v.ReadInConfig()

	if v.IsSet("server.listen_addr") {
		cfg.ListenAddr = v.GetString("server.listen_addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("server.max_upload_bytes") {
		cfg.MaxUploadBytes = v.GetInt64("server.max_upload_bytes")
	}
	if v.IsSet("migrations.path") {
		cfg.MigrationsPath = v.GetString("migrations.path")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}

	return cfg, nil
}
