package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string   `env:"PORT" envDefault:"10000"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	LLMAPIKey      string   `env:"LLM_API_KEY,required"`
	LLMBaseURL     string   `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel       string   `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	ImageModel     string   `env:"IMAGE_MODEL" envDefault:"gpt-image-1"`
	RedisAddr      string   `env:"REDIS_ADDR"`
	RedisPassword  string   `env:"REDIS_PASSWORD"`
	RedisDB        int      `env:"REDIS_DB" envDefault:"0"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://drsprinter.github.io,http://localhost:5500"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
