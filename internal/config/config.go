package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"

	"github.com/pauljones0/fb-page-extractor/internal/validator"
)

const (
	DefaultDataDir      = "/data"
	DefaultAPIVersion   = "v19.0"
	DefaultGraphBaseURL = "https://graph.facebook.com"
)

// Config holds the validated run parameters. The json tags match the
// parameter names of the data platform's config.json.
type Config struct {
	APIToken          string  `json:"#api_token" validate:"required"`
	PageID            string  `json:"page_id" validate:"required"`
	APIVersion        string  `json:"api_version" validate:"required"`
	CommentWorkers    int     `json:"comment_workers" validate:"gte=1"`
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gte=0"`
	GraphBaseURL      string  `json:"graph_base_url" validate:"required,url"`
	DataDir           string  `json:"-"`
}

// Overrides carries values set on the command line. Zero values are ignored.
type Overrides struct {
	DataDir        string
	PageID         string
	APIVersion     string
	CommentWorkers int
}

// Error is a user-facing configuration problem detected before any network
// call is made.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

type fileConfig struct {
	Parameters Config `json:"parameters"`
}

func Load() (*Config, error) {
	return LoadWithOverrides(Overrides{})
}

// LoadWithOverrides resolves the configuration from, in increasing priority:
// {dataDir}/config.json, {dataDir}/config.local.json, .env and the process
// environment, and finally o.
func LoadWithOverrides(o Overrides) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	dataDir := o.DataDir
	if dataDir == "" {
		dataDir = os.Getenv("KBC_DATADIR")
	}
	if dataDir == "" {
		dataDir = DefaultDataDir
	}

	cfg := Config{
		APIVersion:     DefaultAPIVersion,
		CommentWorkers: 1,
		GraphBaseURL:   DefaultGraphBaseURL,
	}

	fc, err := readConfigFile(filepath.Join(dataDir, "config.json"))
	switch {
	case err == nil:
		if err := mergo.Merge(&cfg, fc.Parameters, mergo.WithOverride); err != nil {
			return nil, &Error{Msg: "failed to merge config file parameters", Err: err}
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No config file found, using environment only", "dataDir", dataDir)
	default:
		return nil, &Error{Msg: "failed to read config file", Err: err}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if o.PageID != "" {
		cfg.PageID = o.PageID
	}
	if o.APIVersion != "" {
		cfg.APIVersion = o.APIVersion
	}
	if o.CommentWorkers != 0 {
		cfg.CommentWorkers = o.CommentWorkers
	}
	cfg.DataDir = dataDir

	if err := validator.New().ValidateStruct(cfg); err != nil {
		fields := validator.FailedFields(err)
		if len(fields) == 0 {
			return nil, &Error{Msg: "invalid configuration", Err: err}
		}
		return nil, &Error{Msg: fmt.Sprintf("missing or invalid configuration parameters: %s", strings.Join(fields, ", "))}
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("FB_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("FB_PAGE_ID"); v != "" {
		cfg.PageID = v
	}
	if v := os.Getenv("FB_API_VERSION"); v != "" {
		cfg.APIVersion = v
	}
	if v := os.Getenv("FB_GRAPH_BASE_URL"); v != "" {
		cfg.GraphBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("FB_COMMENT_WORKERS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return &Error{Msg: fmt.Sprintf("invalid FB_COMMENT_WORKERS %q", v), Err: err}
		}
		cfg.CommentWorkers = parsed
	}
	if v := os.Getenv("FB_REQUESTS_PER_SECOND"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &Error{Msg: fmt.Sprintf("invalid FB_REQUESTS_PER_SECOND %q", v), Err: err}
		}
		cfg.RequestsPerSecond = parsed
	}
	return nil
}
