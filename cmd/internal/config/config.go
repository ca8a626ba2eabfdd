// Package config reads the server settings from the environment. Outside of
// production the environment is first filled from a .env file; in production
// it is filled from AWS SSM Parameter Store.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	envVarsPrefix = "/keepnotes/prod/"
	ssmRegion     = "us-east-2"

	BackendFile  = "file"
	BackendTable = "table"
)

type Config struct {
	Backend string

	FilePath          string
	FileLenientReads  bool
	FileLenientWrites bool

	DatabasePath string

	StrictValidation bool

	HTTPAddr      string
	HTTPBodyLimit string

	LogLevel log.Lvl

	S3Bucket         string
	S3Region         string
	SnapshotInterval time.Duration
}

// LoadEnv fills the process environment: SSM when GO_ENV=production, .env
// otherwise. A missing .env is not an error.
func LoadEnv(ctx context.Context) error {
	if os.Getenv("GO_ENV") == "production" {
		return loadProdEnv(ctx)
	}

	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no .env file found, using process environment")
		return nil
	}
	return err
}

// FromEnv builds a Config from the environment, applying defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Backend:       getEnv("NOTES_BACKEND", BackendFile),
		FilePath:      getEnv("NOTES_FILE", "notes.json"),
		DatabasePath:  getEnv("NOTES_DB", "notes.db"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":5000"),
		HTTPBodyLimit: getEnv("HTTP_BODY_LIMIT", "2M"),
		S3Bucket:      os.Getenv("S3_BUCKET_NAME"),
		S3Region:      getEnv("AWS_S3_REGION", "us-east-2"),
	}

	var err error
	if cfg.FileLenientReads, err = getBool("NOTES_FILE_LENIENT_READS", true); err != nil {
		return nil, err
	}
	if cfg.FileLenientWrites, err = getBool("NOTES_FILE_LENIENT_WRITES", true); err != nil {
		return nil, err
	}

	if cfg.StrictValidation, err = getBool("NOTES_STRICT_VALIDATION", false); err != nil {
		return nil, err
	}

	if cfg.LogLevel, err = ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	interval := getEnv("SNAPSHOT_INTERVAL", "1h")
	if cfg.SnapshotInterval, err = time.ParseDuration(interval); err != nil {
		return nil, fmt.Errorf("SNAPSHOT_INTERVAL: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendTable:
	default:
		return fmt.Errorf("unknown notes backend %q, expected %q or %q", c.Backend, BackendFile, BackendTable)
	}

	if c.SnapshotInterval <= 0 {
		return errors.New("snapshot interval must be positive")
	}
	return nil
}

// ParseLevel maps a level name to a gommon log level.
func ParseLevel(name string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return log.INFO, fmt.Errorf("unknown log level %q", name)
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(ssmRegion))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	prefixLength := len(envVarsPrefix)
	loaded := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		// Export vars
		for _, param := range out.Parameters {
			key := (*param.Name)[prefixLength:]
			if err := os.Setenv(key, *param.Value); err != nil {
				return fmt.Errorf("unable to set environment variable: %w", err)
			}
			loaded++
		}
	}

	log.Debugf("loaded %d prod environment variables", loaded)
	return nil
}
