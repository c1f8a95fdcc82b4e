// pkg/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/invoice-generator/pkg/render"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	ListenAddr      string        `yaml:"listen_addr"`
	AllowedOrigin   string        `yaml:"allowed_origin"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Output
	OutputDir   string  `yaml:"output_dir"`
	Layout      string  `yaml:"layout"`
	CompressPDF bool    `yaml:"compress_pdf"`
	Company     Company `yaml:"company"`

	// Archive
	DatabaseURL string `yaml:"database_url"`

	// S3 mirror
	S3 S3 `yaml:"s3"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Company is the fallback invoice header.
type Company struct {
	Name  string   `yaml:"name"`
	Lines []string `yaml:"lines"`
}

// S3 configures the optional bucket mirror.
type S3 struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Enabled reports whether a bucket is configured.
func (s S3) Enabled() bool {
	return s.Bucket != ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr:      ":5000",
		AllowedOrigin:   "*",
		MaxBodyBytes:    1 << 20,
		ShutdownTimeout: 15 * time.Second,
		OutputDir:       "invoices",
		Layout:          render.StyleDetailed.String(),
		CompressPDF:     true,
		Company: Company{
			Name:  render.DefaultCompany.Name,
			Lines: append([]string(nil), render.DefaultCompany.Lines...),
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load configuration from defaults, an optional YAML file and environment
// variables, in that order. A .env file in the working directory is loaded
// into the environment first when present.
func Load(path string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("INVOICE_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return nil
}

func (cfg *Config) loadEnv() error {
	var err error

	// Helper function to get env var or keep the current value
	getEnv := func(key, current string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return current
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.AllowedOrigin = getEnv("CORS_ALLOWED_ORIGIN", cfg.AllowedOrigin)
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.Layout = getEnv("INVOICE_LAYOUT", cfg.Layout)
	cfg.Company.Name = getEnv("COMPANY_NAME", cfg.Company.Name)
	if lines, ok := os.LookupEnv("COMPANY_LINES"); ok {
		cfg.Company.Lines = splitLines(lines)
	}
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.S3.Bucket = getEnv("S3_BUCKET", cfg.S3.Bucket)
	cfg.S3.Region = getEnv("AWS_REGION", cfg.S3.Region)
	cfg.S3.Prefix = getEnv("S3_PREFIX", cfg.S3.Prefix)
	cfg.S3.Endpoint = getEnv("S3_ENDPOINT", cfg.S3.Endpoint)
	cfg.S3.AccessKeyID = getEnv("AWS_ACCESS_KEY_ID", cfg.S3.AccessKeyID)
	cfg.S3.SecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", cfg.S3.SecretAccessKey)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	cfg.CompressPDF, err = strconv.ParseBool(getEnv("PDF_COMPRESS", strconv.FormatBool(cfg.CompressPDF)))
	if err != nil {
		return fmt.Errorf("invalid PDF_COMPRESS: %w", err)
	}

	cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", strconv.FormatInt(cfg.MaxBodyBytes, 10)), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid MAX_BODY_BYTES: %w", err)
	}

	if v, ok := os.LookupEnv("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		seconds, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return nil
}

// Validate checks the values that would otherwise fail late.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if _, err := render.ParseStyle(cfg.Layout); err != nil {
		return err
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.S3.Enabled() && cfg.S3.Region == "" {
		return fmt.Errorf("AWS_REGION is required when S3_BUCKET is set")
	}
	return nil
}

// RenderOptions converts the output settings into renderer options.
func (cfg *Config) RenderOptions() (render.Options, error) {
	style, err := render.ParseStyle(cfg.Layout)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Style:    style,
		Company:  render.Company{Name: cfg.Company.Name, Lines: cfg.Company.Lines},
		Compress: cfg.CompressPDF,
	}, nil
}

func splitLines(s string) []string {
	var lines []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			lines = append(lines, part)
		}
	}
	return lines
}
