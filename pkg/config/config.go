package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"FraudScope/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8000" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Artifacts struct {
		Dir        string `yaml:"dir" default:"models" validate:"required"`
		SchemaFile string `yaml:"schema_file" default:"train_columns.json"`
		ScalerFile string `yaml:"scaler_file" default:"transaction_scaler.json"`
		LRFile     string `yaml:"lr_file" default:"lr_fraud_model.gob"`
		RFFile     string `yaml:"rf_file" default:"rf_fraud_model.gob"`
	} `yaml:"artifacts"`
	Dataset struct {
		RawPath   string `yaml:"raw_path" default:"dataset/transactions.csv"`
		CleanPath string `yaml:"clean_path" default:"dataset/transactions_clean.csv"`
		Label     string `yaml:"label" default:"is_fraud"`
	} `yaml:"dataset"`
	Trainer struct {
		TestRatio float64 `yaml:"test_ratio" default:"0.2" validate:"gt=0,lt=1"`
		Seed      int64   `yaml:"seed" default:"42"`
		LR        struct {
			Epochs       int     `yaml:"epochs" default:"200" validate:"gte=1"`
			LearningRate float64 `yaml:"learning_rate" default:"0.1" validate:"gt=0"`
			BatchSize    int     `yaml:"batch_size" default:"64" validate:"gte=1"`
		} `yaml:"lr"`
		RF struct {
			Trees           int `yaml:"trees" default:"200" validate:"gte=1"`
			MaxDepth        int `yaml:"max_depth" default:"0" validate:"gte=0"`
			MinSamplesSplit int `yaml:"min_samples_split" default:"2" validate:"gte=2"`
		} `yaml:"rf"`
	} `yaml:"trainer"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file, fills defaults, and validates.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ARTIFACTS_DIR"); v != "" {
		c.Artifacts.Dir = v
	}
	if v := os.Getenv("RAW_CSV"); v != "" {
		c.Dataset.RawPath = v
	}
	if v := os.Getenv("CLEAN_CSV"); v != "" {
		c.Dataset.CleanPath = v
	}

	return c, nil
}

// SchemaPath returns the path of the persisted training column order.
func (c *Config) SchemaPath() string { return filepath.Join(c.Artifacts.Dir, c.Artifacts.SchemaFile) }

// ScalerPath returns the path of the persisted fitted scaler.
func (c *Config) ScalerPath() string { return filepath.Join(c.Artifacts.Dir, c.Artifacts.ScalerFile) }

// LRModelPath returns the path of the persisted logistic regression model.
func (c *Config) LRModelPath() string { return filepath.Join(c.Artifacts.Dir, c.Artifacts.LRFile) }

// RFModelPath returns the path of the persisted random forest model.
func (c *Config) RFModelPath() string { return filepath.Join(c.Artifacts.Dir, c.Artifacts.RFFile) }
