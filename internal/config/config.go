package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	Rules    RulesConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// CORSOrigins is read from the comma separated CORS_ALLOWED_ORIGINS.
	CORSOrigins []string
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
	// MaxUploadSize is in bytes.
	MaxUploadSize int64
}

// RulesConfig holds the payroll and attendance rule parameters.
type RulesConfig struct {
	Timezone       string             `yaml:"timezone"`
	LateCutoff     string             `yaml:"late_cutoff"`
	OverdrawPolicy string             `yaml:"leave_overdraw_policy"`
	LeaveDefaults  LeaveDefaultConfig `yaml:"leave_defaults"`
	Payroll        PayrollRateConfig  `yaml:"payroll"`
}

type LeaveDefaultConfig struct {
	Annual int `yaml:"annual"`
	Sick   int `yaml:"sick"`
	Casual int `yaml:"casual"`
}

// PayrollRateConfig keeps rates as strings so they parse exactly into decimals.
type PayrollRateConfig struct {
	TransportRate string `yaml:"transport_rate"`
	MedicalRate   string `yaml:"medical_rate"`
	BonusFlat     string `yaml:"bonus_flat"`
	TaxRate       string `yaml:"tax_rate"`
	InsuranceRate string `yaml:"insurance_rate"`
	OtherFlat     string `yaml:"other_flat"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "officehr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			config.App.CORSOrigins = append(config.App.CORSOrigins, origin)
		}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Storage configuration
	maxUpload, err := strconv.ParseInt(getEnv("STORAGE_MAX_UPLOAD_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_MAX_UPLOAD_BYTES: %w", err)
	}

	config.Storage = StorageConfig{
		BasePath:      getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:       getEnv("STORAGE_BASE_URL", "/uploads"),
		MaxUploadSize: maxUpload,
	}

	// Rules configuration
	rules, err := loadRules()
	if err != nil {
		return nil, err
	}
	config.Rules = rules

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// DefaultRules returns the rule parameters used when nothing overrides them.
func DefaultRules() RulesConfig {
	return RulesConfig{
		Timezone:       "UTC",
		LateCutoff:     "09:00:00",
		OverdrawPolicy: "reject",
		LeaveDefaults: LeaveDefaultConfig{
			Annual: 20,
			Sick:   10,
			Casual: 10,
		},
		Payroll: PayrollRateConfig{
			TransportRate: "0.10",
			MedicalRate:   "0.05",
			BonusFlat:     "0",
			TaxRate:       "0.02",
			InsuranceRate: "0.01",
			OtherFlat:     "0",
		},
	}
}

// loadRules starts from DefaultRules, applies the RULES_* environment
// variables and then the YAML file named by RULES_FILE, if any.
func loadRules() (RulesConfig, error) {
	rules := DefaultRules()

	rules.Timezone = getEnv("RULES_TIMEZONE", rules.Timezone)
	rules.LateCutoff = getEnv("RULES_LATE_CUTOFF", rules.LateCutoff)
	rules.OverdrawPolicy = getEnv("RULES_LEAVE_OVERDRAW_POLICY", rules.OverdrawPolicy)

	path := getEnv("RULES_FILE", "")
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return RulesConfig{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := ParseRules(data, &rules); err != nil {
		return RulesConfig{}, err
	}
	return rules, nil
}

// ParseRules overlays the YAML document in data onto rules. Keys absent from
// the document keep their current value.
func ParseRules(data []byte, rules *RulesConfig) error {
	if err := yaml.Unmarshal(data, rules); err != nil {
		return fmt.Errorf("failed to parse rules file: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return c.Rules.Validate()
}

// Validate checks the rule parameters that can be checked without the domain packages.
func (r RulesConfig) Validate() error {
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return fmt.Errorf("invalid rules timezone %q: %w", r.Timezone, err)
	}
	if _, _, _, err := r.Cutoff(); err != nil {
		return err
	}
	switch r.OverdrawPolicy {
	case "reject", "clamp", "allow":
	default:
		return fmt.Errorf("invalid leave overdraw policy %q", r.OverdrawPolicy)
	}
	if r.LeaveDefaults.Annual < 0 || r.LeaveDefaults.Sick < 0 || r.LeaveDefaults.Casual < 0 {
		return fmt.Errorf("leave defaults must not be negative")
	}
	return nil
}

// Cutoff parses LateCutoff as HH:MM or HH:MM:SS.
func (r RulesConfig) Cutoff() (hour, minute, second int, err error) {
	layout := "15:04:05"
	if strings.Count(r.LateCutoff, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, r.LateCutoff)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid late cutoff %q: %w", r.LateCutoff, err)
	}
	return t.Hour(), t.Minute(), t.Second(), nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
