package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./data/feed-comb.db" description:"SQLite database file"`
	SettingsFile string `long:"settings" env:"SETTINGS_FILE" default:"./settings.yml" description:"YAML file with the initial filter settings"`

	// Application configuration
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl          string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://comb.example.com)"`
	WorkerCount      int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for persistence tasks"`
	APIAccessKey     string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	SessionCacheSize int    `long:"session-cache" env:"SESSION_CACHE" default:"64" description:"Maximum number of live page sessions"`
	RetentionDays    int    `long:"retention-days" env:"RETENTION_DAYS" default:"30" description:"Days of suppression history to keep (0 keeps everything)"`

	// Batch scheduling
	SliceSize         int `long:"slice-size" env:"SLICE_SIZE" default:"40" description:"Items processed per idle slice"`
	SliceBudgetMs     int `long:"slice-budget" env:"SLICE_BUDGET_MS" default:"8" description:"Time budget of one idle slice in milliseconds"`
	MutationThreshold int `long:"mutation-threshold" env:"MUTATION_THRESHOLD" default:"200" description:"Mutation count above which a full rescan is scheduled"`
	IdleTimeoutMs     int `long:"idle-timeout" env:"IDLE_TIMEOUT_MS" default:"200" description:"Longest wait for an idle period in milliseconds"`
	IdleWindowMs      int `long:"idle-window" env:"IDLE_WINDOW_MS" default:"16" description:"Length of an idle period in milliseconds"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		SettingsFile:      raw.SettingsFile,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		WorkerCount:       raw.WorkerCount,
		APIAccessKey:      raw.APIAccessKey,
		SessionCacheSize:  raw.SessionCacheSize,
		RetentionDays:     raw.RetentionDays,
		SliceSize:         raw.SliceSize,
		SliceBudget:       time.Duration(raw.SliceBudgetMs) * time.Millisecond,
		MutationThreshold: raw.MutationThreshold,
		IdleTimeout:       time.Duration(raw.IdleTimeoutMs) * time.Millisecond,
		IdleWindow:        time.Duration(raw.IdleWindowMs) * time.Millisecond,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func validate(raw rawCfg) error {
	positive := map[string]int{
		"worker-count":  raw.WorkerCount,
		"session-cache": raw.SessionCacheSize,
		"slice-size":    raw.SliceSize,
		"slice-budget":  raw.SliceBudgetMs,
		"idle-timeout":  raw.IdleTimeoutMs,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	if raw.MutationThreshold < 0 {
		return fmt.Errorf("mutation-threshold cannot be negative, got %d", raw.MutationThreshold)
	}
	if raw.RetentionDays < 0 {
		return fmt.Errorf("retention-days cannot be negative, got %d", raw.RetentionDays)
	}
	if raw.IdleWindowMs < 0 {
		return fmt.Errorf("idle-window cannot be negative, got %d", raw.IdleWindowMs)
	}
	return nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set installs cfg as the global configuration.
func Set(cfg *Cfg) {
	globalCfg = cfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
