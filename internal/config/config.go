package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Progress backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config holds process-wide settings resolved from the environment.
type Config struct {
	// DBPath is the SQLite database file. Empty means the store's default
	// location.
	DBPath string

	// DataDir holds per-key progress files when Backend is "file".
	DataDir string

	// Backend selects where progress is persisted: "sqlite" or "file".
	Backend string

	// Player scopes progress and game state. Not an authenticated identity.
	Player string

	// DefaultNum is the session size used when no --num flag is given.
	DefaultNum int

	ServerAddress   string
	ShutdownTimeout time.Duration

	LogLevel slog.Level
}

// Load reads an optional .env file and then the LEITNER_* environment.
func Load() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	dataHome, err := dataHome()
	if err != nil {
		return nil, err
	}
	appDir := filepath.Join(dataHome, "leitner")

	cfg := &Config{
		DBPath:        os.Getenv("LEITNER_DB"),
		DataDir:       getenvDefault("LEITNER_DATA_DIR", filepath.Join(appDir, "data")),
		Backend:       getenvDefault("LEITNER_PROGRESS_BACKEND", BackendSQLite),
		Player:        getenvDefault("LEITNER_PLAYER", defaultPlayer()),
		ServerAddress: getenvDefault("LEITNER_ADDR", ":5004"),
	}

	if cfg.Backend != BackendSQLite && cfg.Backend != BackendFile {
		return nil, fmt.Errorf("config: LEITNER_PROGRESS_BACKEND=%q must be %q or %q", cfg.Backend, BackendSQLite, BackendFile)
	}

	cfg.DefaultNum, err = getInt("LEITNER_NUM", 40)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout, err = getDuration("LEITNER_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel, err = parseLevel(getenvDefault("LEITNER_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func dataHome() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "guest"
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getInt(k string, fallback int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: %s=%q is not a non-negative integer", k, v)
	}
	return n, nil
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("config: LEITNER_LOG_LEVEL=%q: %w", s, err)
	}
	return l, nil
}
