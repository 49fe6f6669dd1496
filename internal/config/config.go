package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-required:"true"`
	LogLevel   string     `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer `yaml:"http_server"`
	Limiter    Limiter    `yaml:"limiter"`
	Auth       AuthConfig `yaml:"auth"`
	Newsletter Newsletter `yaml:"newsletter"`
}

type HttpServer struct {
	Port           string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"30s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"25s" env-description:"deadline of the request context, below HTTP_TIMEOUT"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	TrustedProxies []string      `yaml:"trusted_proxies" env:"HTTP_TRUSTED_PROXIES" env-separator:"," env-description:"proxies allowed to set X-Forwarded-For, none by default"`
}

type Limiter struct {
	RPS   int           `yaml:"rps" env:"LIMITER_RPS" env-default:"10"`
	Burst int           `yaml:"burst" env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `yaml:"ttl" env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT JWTConfig `yaml:"jwt"`
}

type JWTConfig struct {
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"JWT_ACCESS_TOKEN_TTL" env-default:"720h"`
	SigningKey     string        `yaml:"signing_key" env:"JWT_SIGNING_KEY" env-required:"true"`
}

type Newsletter struct {
	APIKey  string           `yaml:"api_key" env:"NEWSLETTER_API_KEY" env-required:"true"`
	BaseURL string           `yaml:"base_url" env:"NEWSLETTER_BASE_URL" env-default:"https://api.brevo.com/v3"`
	Timeout time.Duration    `yaml:"timeout" env:"NEWSLETTER_TIMEOUT" env-default:"10s" env-description:"per upstream call, at most HTTP_REQUEST_TIMEOUT"`
	Lists   map[string]int64 `yaml:"lists" env:"NEWSLETTER_LISTS" env-description:"list name to provider list id, e.g. news:12,promo:7"`
	Sender  Sender           `yaml:"sender"`
}

// Sender is used for campaigns that do not name their own sender.
type Sender struct {
	Email   string `yaml:"email" env:"NEWSLETTER_FROM_EMAIL"`
	Name    string `yaml:"name" env:"NEWSLETTER_FROM_NAME"`
	ReplyTo string `yaml:"reply_to" env:"NEWSLETTER_REPLY_TO"`
}

// Load reads the yaml file at path, when set, and then the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate requires newsletter timeout <= request timeout < http timeout.
func (c *Config) validate() error {
	if c.HttpServer.RequestTimeout <= 0 || c.HttpServer.RequestTimeout >= c.HttpServer.Timeout {
		return fmt.Errorf("http request timeout %s must be positive and below http timeout %s",
			c.HttpServer.RequestTimeout, c.HttpServer.Timeout)
	}
	if c.Newsletter.Timeout <= 0 || c.Newsletter.Timeout > c.HttpServer.RequestTimeout {
		return fmt.Errorf("newsletter timeout %s must be positive and at most http request timeout %s",
			c.Newsletter.Timeout, c.HttpServer.RequestTimeout)
	}

	return nil
}

func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
