package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
		Port string
		Env  string
	}
	Database struct {
		URL  string
		Path string
	}
	Static struct {
		Dir string
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// ListenAddr is the address the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Addr, c.Server.Port)
}

// IsDevelopment reports whether the deployment env asks for the endpoint map
// at the root path instead of the static document.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Env, "development")
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("SAMPLES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0")
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.env", "")
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "data/samples.db")
	v.SetDefault("static.dir", "public")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "muestras")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	// the deployment contract the web client's hosting uses
	_ = v.BindEnv("database.url", "SAMPLES_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("server.port", "SAMPLES_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.env", "SAMPLES_SERVER_ENV", "APP_ENV")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
