package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matchscope/matchscope-api/internal/platform/resilience"
)

const (
	AppEnvDevelopment = "development"
	AppEnvStaging     = "staging"
	AppEnvProduction  = "production"
)

// Default tracked leagues for the live-schedule fan-out, as
// "espn-code:display name" pairs.
const defaultTrackedLeagues = "eng.1:Premier League," +
	"esp.1:La Liga," +
	"ita.1:Serie A," +
	"ger.1:Bundesliga," +
	"fra.1:Ligue 1," +
	"por.1:Primeira Liga," +
	"ned.1:Eredivisie," +
	"eng.2:Championship," +
	"sco.1:Scottish Premiership," +
	"usa.1:MLS," +
	"bra.1:Brasileirão," +
	"mex.1:Liga MX," +
	"arg.1:Liga Profesional," +
	"uefa.champions:Champions League," +
	"uefa.europa:Europa League"

// TrackedLeague is one scoreboard the live provider is polled for.
type TrackedLeague struct {
	Code string
	Name string
}

type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       string

	CORSAllowedOrigins []string

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	FootballDataBaseURL    string
	FootballDataToken      string
	FootballDataTimeout    time.Duration
	FootballDataMaxRetries int
	FootballDataCircuit    resilience.CircuitBreakerConfig

	ESPNBaseURL       string
	ESPNTimeout       time.Duration
	ESPNMaxRetries    int
	ESPNMaxConcurrent int
	ESPNCircuit       resilience.CircuitBreakerConfig

	TrackedLeagues []TrackedLeague
	FormWindow     int
}

func Load() (Config, error) {
	cfg := Config{
		ServiceName:    getEnv("APP_SERVICE_NAME", "matchscope-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:       getEnv("APP_LOG_LEVEL", "info"),

		PprofAddr: getEnv("PPROF_ADDR", ":6060"),

		UptraceDSN: getEnv("UPTRACE_DSN", ""),

		PyroscopeServerAddress:     getEnv("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "matchscope-api"),
		PyroscopeAuthToken:         getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),

		FootballDataBaseURL: getEnv("FOOTBALLDATA_BASE_URL", "https://api.football-data.org/v4"),
		FootballDataToken:   strings.TrimSpace(os.Getenv("FOOTBALLDATA_TOKEN")),

		ESPNBaseURL: getEnv("ESPN_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/soccer"),
	}

	var err error
	if cfg.AppEnv, err = parseAppEnv(getEnv("APP_ENV", AppEnvDevelopment)); err != nil {
		return Config{}, err
	}
	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.FootballDataToken == "" {
		return Config{}, fmt.Errorf("FOOTBALLDATA_TOKEN is required")
	}
	if cfg.FootballDataTimeout, err = getEnvAsDuration("FOOTBALLDATA_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.FootballDataMaxRetries, err = getEnvAsInt("FOOTBALLDATA_MAX_RETRIES", 1); err != nil {
		return Config{}, err
	}
	if cfg.FootballDataCircuit, err = loadCircuitConfig("FOOTBALLDATA"); err != nil {
		return Config{}, err
	}

	if cfg.ESPNTimeout, err = getEnvAsDuration("ESPN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ESPNMaxRetries, err = getEnvAsInt("ESPN_MAX_RETRIES", 1); err != nil {
		return Config{}, err
	}
	if cfg.ESPNMaxConcurrent, err = getEnvAsInt("ESPN_MAX_CONCURRENT", 4); err != nil {
		return Config{}, err
	}
	if cfg.ESPNMaxConcurrent < 1 {
		cfg.ESPNMaxConcurrent = 1
	}
	if cfg.ESPNCircuit, err = loadCircuitConfig("ESPN"); err != nil {
		return Config{}, err
	}

	if cfg.TrackedLeagues, err = parseTrackedLeagues(getEnv("TRACKED_LEAGUES", defaultTrackedLeagues)); err != nil {
		return Config{}, err
	}
	if cfg.FormWindow, err = getEnvAsInt("STATS_FORM_WINDOW", 10); err != nil {
		return Config{}, err
	}
	if cfg.FormWindow < 1 {
		return Config{}, fmt.Errorf("parse STATS_FORM_WINDOW: must be at least 1")
	}

	return cfg, nil
}

func parseAppEnv(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "development", "local":
		return AppEnvDevelopment, nil
	case "stage", "staging":
		return AppEnvStaging, nil
	case "prod", "production":
		return AppEnvProduction, nil
	default:
		return "", fmt.Errorf("parse APP_ENV: unknown environment %q", value)
	}
}

func loadCircuitConfig(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()

	enabled, err := getEnvAsBool(prefix+"_CB_ENABLED", defaults.Enabled)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	threshold, err := getEnvAsInt(prefix+"_CB_FAILURE_THRESHOLD", defaults.FailureThreshold)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	openTimeout, err := getEnvAsDuration(prefix+"_CB_OPEN_TIMEOUT", defaults.OpenTimeout)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	halfOpenMax, err := getEnvAsInt(prefix+"_CB_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}

	return resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMax,
	}), nil
}

// parseTrackedLeagues parses "code:name" CSV pairs, e.g.
// "eng.1:Premier League,esp.1:La Liga".
func parseTrackedLeagues(value string) ([]TrackedLeague, error) {
	entries := splitCSV(value)
	if len(entries) == 0 {
		return nil, fmt.Errorf("parse TRACKED_LEAGUES: at least one league is required")
	}

	out := make([]TrackedLeague, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		code, name, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("parse TRACKED_LEAGUES: entry %q is not code:name", entry)
		}
		code = strings.TrimSpace(code)
		name = strings.TrimSpace(name)
		if code == "" || name == "" {
			return nil, fmt.Errorf("parse TRACKED_LEAGUES: entry %q is not code:name", entry)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, TrackedLeague{Code: code, Name: name})
	}

	return out, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
