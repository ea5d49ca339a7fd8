package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/microplastics-etl/internal/indices"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	InputPath  string `validate:"required"`
	InputSheet string
	OutputDir  string `validate:"required"`

	ScatterSampleCap  int `validate:"gt=0"`
	ParallelSampleCap int `validate:"gt=0"`
	// SampleSeed makes sampling reproducible when non-zero.
	SampleSeed uint64

	WeightsFile string
	Weights     indices.Weights

	LogLevel        string `validate:"oneof=debug info warn error"`
	LogFormat       string `validate:"oneof=json text"`
	MetricsTextfile string

	KafkaEnabled bool
	KafkaBrokers []string `validate:"required_if=KafkaEnabled true"`
	KafkaTopic   string   `validate:"required"`

	HTTPAddr        string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Overrides carries command-line values that take precedence over the
// environment. Empty fields are ignored.
type Overrides struct {
	InputPath   string
	OutputDir   string
	WeightsFile string
}

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	return LoadWithOverrides(Overrides{})
}

// LoadWithOverrides reads the environment, applies o, loads the weights file
// and validates the result.
func LoadWithOverrides(o Overrides) (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	scatterCap, err := positiveInt("SCATTER_SAMPLE_CAP", 1000)
	if err != nil {
		return nil, err
	}
	parallelCap, err := positiveInt("PARALLEL_SAMPLE_CAP", 500)
	if err != nil {
		return nil, err
	}
	seed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("SAMPLE_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid SAMPLE_SEED")
	}

	var brokers []string
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid KAFKA_ENABLED")
		}
	}

	cfg := &Config{
		InputPath:         firstNonEmpty(o.InputPath, sharedcfg.EnvOrDefault("INPUT_PATH", "data/raw/microplastics.csv")),
		InputSheet:        os.Getenv("INPUT_SHEET"),
		OutputDir:         firstNonEmpty(o.OutputDir, sharedcfg.EnvOrDefault("OUTPUT_DIR", "data/processed")),
		ScatterSampleCap:  scatterCap,
		ParallelSampleCap: parallelCap,
		SampleSeed:        seed,
		WeightsFile:       firstNonEmpty(o.WeightsFile, os.Getenv("WEIGHTS_FILE")),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		MetricsTextfile:   os.Getenv("METRICS_TEXTFILE"),
		KafkaEnabled:      kafkaEnabled,
		KafkaBrokers:      brokers,
		KafkaTopic:        sharedcfg.EnvOrDefault("KAFKA_TOPIC", "microplastics-documents"),
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout:   shutdownTimeout,
	}

	cfg.Weights, err = LoadWeights(cfg.WeightsFile)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

// LoadWeights returns the default policy weights overlaid with the YAML file
// at path. Keys absent from the file keep their defaults. An empty path
// returns the defaults.
func LoadWeights(path string) (indices.Weights, error) {
	w := indices.DefaultWeights()
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse weights file %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return w, fmt.Errorf("weights file %s: %w", path, err)
	}
	return w, nil
}

// envNames maps struct fields to the variables that set them, for messages.
var envNames = map[string]string{
	"InputPath":         "INPUT_PATH",
	"OutputDir":         "OUTPUT_DIR",
	"ScatterSampleCap":  "SCATTER_SAMPLE_CAP",
	"ParallelSampleCap": "PARALLEL_SAMPLE_CAP",
	"LogLevel":          "LOG_LEVEL",
	"LogFormat":         "LOG_FORMAT",
	"KafkaBrokers":      "KAFKA_BROKERS",
	"KafkaTopic":        "KAFKA_TOPIC",
	"HTTPAddr":          "HTTP_ADDR",
	"ShutdownTimeout":   "SHUTDOWN_TIMEOUT",
}

// describe turns validator errors into messages naming environment variables.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		name := envNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Errorf("%s is required", name))
		default:
			msgs = append(msgs, fmt.Errorf("invalid %s: %v", name, fe.Value()))
		}
	}
	return errors.Join(msgs...)
}

func positiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
