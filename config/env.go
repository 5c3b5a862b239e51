package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv       = "local"
	defaultLogLevel     = "warn"
	defaultDataDir      = "."
	defaultDatabasePath = "ecommerce.db"
	defaultSeed         = 42
	defaultRowCount     = 20
	defaultStorageDisk  = "local"
	defaultS3Region     = "us-east-1"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env from the working directory once.
// Missing files are not an error; defaults apply.
func Load() error {
	loadOnce.Do(func() {
		loadErr = load("config/app.json", ".env")
	})
	return loadErr
}

// LoadFrom replaces the current values with defaults merged with the given
// JSON config file and then the given .env file. Either path may be empty.
func LoadFrom(configPath, envPath string) error {
	if err := load(configPath, envPath); err != nil {
		return err
	}

	// An explicit load wins over the lazy one in Load.
	loadOnce.Do(func() {})
	return nil
}

func load(configPath, envPath string) error {
	loaded := defaultValues()

	if configPath != "" {
		if err := mergeJSONConfig(configPath, loaded); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	if envPath != "" {
		if err := mergeDotEnv(envPath, loaded); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()
	return nil
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":            defaultAppEnv,
		"LOG_LEVEL":          defaultLogLevel,
		"DATA_DIR":           defaultDataDir,
		"DB_PATH":            defaultDatabasePath,
		"REPORT_DB_PATH":     "",
		"SEED":               strconv.Itoa(defaultSeed),
		"ROW_COUNT":          strconv.Itoa(defaultRowCount),
		"STORAGE_DISK":       defaultStorageDisk,
		"STORAGE_LOCAL_ROOT": "",
		"METRICS_FILE":       "",
	}
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// LogLevel is the minimum slog level name (debug, info, warn, error).
// Commands stay quiet on stderr unless it is lowered.
func LogLevel() string {
	_ = Load()
	return get("LOG_LEVEL", defaultLogLevel)
}

// DataDir is where the five CSV files live, relative to the storage disk root.
func DataDir() string {
	_ = Load()
	return get("DATA_DIR", defaultDataDir)
}

// DatabasePath is the SQLite file the ingestor rebuilds.
func DatabasePath() string {
	_ = Load()
	return get("DB_PATH", defaultDatabasePath)
}

// ReportDatabasePath is the SQLite file the reporter reads. It falls back to
// DatabasePath so both components agree unless told otherwise.
func ReportDatabasePath() string {
	_ = Load()
	return get("REPORT_DB_PATH", DatabasePath())
}

func Seed() uint64 {
	_ = Load()
	n, err := strconv.ParseUint(get("SEED", ""), 10, 64)
	if err != nil {
		return defaultSeed
	}
	return n
}

func RowCount() int {
	_ = Load()
	n, err := strconv.Atoi(get("ROW_COUNT", ""))
	if err != nil || n <= 0 {
		return defaultRowCount
	}
	return n
}

// MetricsFile, when set, is where each command writes a Prometheus textfile.
func MetricsFile() string {
	_ = Load()
	return get("METRICS_FILE", "")
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDisk() string {
	_ = Load()
	return strings.ToLower(get("STORAGE_DISK", defaultStorageDisk))
}

// StorageLocalRoot is the root of the local disk. Empty means the working directory.
func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", "")
}

func S3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func S3Region() string   { _ = Load(); return get("S3_REGION", defaultS3Region) }
func S3Key() string      { _ = Load(); return get("S3_KEY", "") }
func S3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func S3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func S3Prefix() string   { _ = Load(); return get("S3_PREFIX", "") }

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
