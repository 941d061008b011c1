package notepub

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for a notepub publisher.
type Config struct {
	NotesDir     string   // NOTES_DIR (default "./sample-notes")
	OutputDir    string   // OUTPUT_DIR (default "./output")
	TemplatesDir string   // TEMPLATES_DIR (default "./templates")
	SkipSuffixes []string // Directory-name suffixes never descended into (default ".obsidian")

	// DeployCommand is run after every cycle with OutputDir appended as the
	// last argument. An empty command disables deployment.
	DeployCommand []string
	DeployTimeout time.Duration // DEPLOY_TIMEOUT, zero means no timeout

	SiteName string // SITE_NAME (default "Notes")
	SiteURL  string // SITE_URL (default "http://localhost:3000")

	HistoryPath string // HISTORY_DB (default "data/notepub.db")
	Addr        string // ADDR, preview server listen address (default ":3000")

	MaxImageWidth int // Local images wider than this are downscaled (default 800)
}

// DefaultDeployCommand publishes the output directory to Cloudflare Pages.
var DefaultDeployCommand = []string{"npx", "wrangler", "pages", "deploy"}

func (c *Config) setDefaults() {
	if c.NotesDir == "" {
		c.NotesDir = "./sample-notes"
	}
	if c.OutputDir == "" {
		c.OutputDir = "./output"
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = "./templates"
	}
	if c.SkipSuffixes == nil {
		c.SkipSuffixes = []string{".obsidian"}
	}
	if c.SiteName == "" {
		c.SiteName = "Notes"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	}
	if c.HistoryPath == "" {
		c.HistoryPath = "data/notepub.db"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = 800
	}
}

// ConfigFromEnv reads the environment into a Config with defaults applied.
func ConfigFromEnv() Config {
	cfg := Config{
		NotesDir:     os.Getenv("NOTES_DIR"),
		OutputDir:    os.Getenv("OUTPUT_DIR"),
		TemplatesDir: os.Getenv("TEMPLATES_DIR"),
		SiteName:     os.Getenv("SITE_NAME"),
		SiteURL:      os.Getenv("SITE_URL"),
		HistoryPath:  os.Getenv("HISTORY_DB"),
		Addr:         os.Getenv("ADDR"),
	}
	// An explicitly empty DEPLOY_COMMAND turns deployment off.
	if v, ok := os.LookupEnv("DEPLOY_COMMAND"); ok {
		cfg.DeployCommand = strings.Fields(v)
		if cfg.DeployCommand == nil {
			cfg.DeployCommand = []string{}
		}
	} else {
		cfg.DeployCommand = append([]string(nil), DefaultDeployCommand...)
	}
	if d, err := time.ParseDuration(os.Getenv("DEPLOY_TIMEOUT")); err == nil {
		cfg.DeployTimeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("MAX_IMAGE_WIDTH")); err == nil && n > 0 {
		cfg.MaxImageWidth = n
	}
	cfg.setDefaults()
	return cfg
}

// Normalize applies defaults to a Config built by hand.
func (c Config) Normalize() Config {
	c.setDefaults()
	return c
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
