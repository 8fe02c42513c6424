package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type API struct {
	BaseURL string `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8080/v1"`
}

type Stripe struct {
	PublishableKey string `yaml:"publishable_key" env:"STRIPE_PUBLISHABLE_KEY" env-default:""`
	Currency       string `yaml:"currency" env:"STRIPE_CURRENCY" env-default:"inr"`
}

type Cloudinary struct {
	CloudName    string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME" env-default:"davtv5r1c"`
	UploadPreset string `yaml:"upload_preset" env:"CLOUDINARY_UPLOAD_PRESET" env-default:"mangaZone"`
}

type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT" env-default:""`
}

type Config struct {
	Env         string     `yaml:"env" env:"ENV" env-default:"dev"`
	SessionPath string     `yaml:"session_path" env:"SESSION_PATH" env-default:""`
	API         API        `yaml:"api"`
	Stripe      Stripe     `yaml:"stripe"`
	Cloudinary  Cloudinary `yaml:"cloudinary"`
	Telemetry   Telemetry  `yaml:"telemetry"`
}

// MustLoad reads the config file named by CONFIG_PATH, or falls back
// to environment variables alone. Every field has an env default, so
// the CLI runs with no file against a localhost API.
func MustLoad() *Config {

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")

	if configPath != "" {

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("config file does not exist: %s", configPath)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("can not read config file: %s", err.Error())
		}

		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("can not read environment: %s", err.Error())
	}

	return &cfg
}
