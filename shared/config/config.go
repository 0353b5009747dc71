package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Http            Http      `yaml:"http" validate:"required"`
	DefaultPageSize int       `yaml:"default_page_size" validate:"required,min=1"`
	MaxPageSize     int       `yaml:"max_page_size" validate:"required,gtefield=DefaultPageSize"`
	Limits          Limits    `yaml:"limits" validate:"required"`
	RateLimit       RateLimit `yaml:"rate_limit" validate:"required"`
	AllowedOrigins  []string  `yaml:"allowed_origins"`
	SecureCookies   bool      `yaml:"secure_cookies"` // also enables HSTS
	LogLevel        string    `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON         bool      `yaml:"log_json"`
}

type Http struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"required"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"required"`
}

// Limits are maximum lengths in runes
type Limits struct {
	TitleMaxLen    int `yaml:"title_max_len" validate:"required,min=1"`
	ContentMaxLen  int `yaml:"content_max_len" validate:"required,min=1"`
	WriterMaxLen   int `yaml:"writer_max_len" validate:"required,min=1"`
	ReplyMaxLen    int `yaml:"reply_max_len" validate:"required,min=1"`
	MaxAttachments int `yaml:"max_attachments"`
}

// RateLimit applies per client IP to write endpoints
type RateLimit struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"required,gt=0"`
	Burst             int           `yaml:"burst" validate:"required,min=1"`
	IdleTTL           time.Duration `yaml:"idle_ttl" validate:"required"`
}

type Private struct {
	Pg Pg `yaml:"pg" validate:"required"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password" validate:"required"`
	Dbname   string `yaml:"dbname" validate:"required"`
	SSLMode  string `yaml:"sslmode"`
}

func (p Pg) DSN() string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Dbname, sslMode)
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder and panics if either is missing or invalid.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return err
	}
	return validate.Struct(c.Private)
}
