package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/agriance/contractgen/contract"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Minio    MinioConfig    `yaml:"minio"`
	Auth     AuthConfig     `yaml:"auth"`
	Store    StoreConfig    `yaml:"store"`
	Document DocumentConfig `yaml:"document"`
	Users    []User         `yaml:"users"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// RateLimit is the number of requests per client IP and minute.
	RateLimit int `yaml:"rate_limit"`
	// GenerateRateLimit is the number of contracts a tenant (or anonymous
	// client IP) may generate per minute.
	GenerateRateLimit int `yaml:"generate_rate_limit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MinioConfig configures the optional PDF archive. An empty endpoint
// disables archiving.
type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
	// Public bucket: hand out plain object URLs instead of presigned ones.
	Public bool `yaml:"public"`
}

// Enabled reports whether generated PDFs are archived.
func (m MinioConfig) Enabled() bool { return m.Endpoint != "" }

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type StoreConfig struct {
	MaxContracts int `yaml:"max_contracts"`
}

// DocumentConfig controls what generated contracts look like.
type DocumentConfig struct {
	Platform     string                        `yaml:"platform"`
	Variant      string                        `yaml:"variant"`
	OutputDir    string                        `yaml:"output_dir"`
	Installments []contract.InstallmentFormula `yaml:"installments"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Tenant   string `yaml:"tenant"`
}

var GlobalConfig *Config

// Load reads the YAML file at path, applies defaults and checks the
// document settings, so that a bad clause variant or installment formula
// fails at startup rather than on the first contract.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Document.validate(); err != nil {
		return nil, fmt.Errorf("invalid document config: %w", err)
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// validate normalizes the variant name and compiles the installment
// formulas.
func (d *DocumentConfig) validate() error {
	variant, err := contract.ParseVariant(d.Variant)
	if err != nil {
		return err
	}
	d.Variant = string(variant)
	for _, in := range d.Installments {
		if in.Name == "" {
			return errors.New("installment without a name")
		}
	}
	_, err = contract.NewScheduler(d.Installments)
	return err
}

// LoadOrDefault loads path, falling back to the defaults when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 100
	}
	if cfg.Server.GenerateRateLimit == 0 {
		cfg.Server.GenerateRateLimit = 20
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}
	if cfg.Store.MaxContracts == 0 {
		cfg.Store.MaxContracts = 100
	}
	if cfg.Document.Platform == "" {
		cfg.Document.Platform = "Agriance - Agricultural Contract Platform"
	}
	if cfg.Document.Variant == "" {
		cfg.Document.Variant = string(contract.VariantStandard)
	}
	if cfg.Document.OutputDir == "" {
		cfg.Document.OutputDir = "."
	}
	if len(cfg.Document.Installments) == 0 {
		cfg.Document.Installments = append([]contract.InstallmentFormula(nil), contract.DefaultInstallments...)
	}
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
