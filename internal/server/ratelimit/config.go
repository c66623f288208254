package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one route.
type EndpointConfig struct {
	// Path is matched exactly, by prefix when it ends in "/", or segment by
	// segment when it contains a "*" wildcard.
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration // refill period for Limit tokens
	Burst  int           // bucket size, defaults to Limit
}

// LoadConfig reads RATE_LIMIT_* variables through lookup, usually
// os.LookupEnv. Invalid values fall back to their defaults.
func LoadConfig(lookup func(string) (string, bool)) *Config {
	env := envReader(lookup)

	if !env.boolean("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(env.str("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(env.str("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(env.integer("RATE_LIMIT_PDF_PER_HOUR", 30)),
	}
}

// DefaultEndpointConfigs returns the per-route limits. PDF export starts a
// browser per request, so it gets its own hourly budget.
func DefaultEndpointConfigs(pdfPerHour int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/resumes/*/pdf", Method: "GET", Limit: pdfPerHour, Window: time.Hour, Burst: 3},

		{Path: "/resumes", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/resumes/", Method: "PUT", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/resumes/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/resumes/*/share", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Public links are unauthenticated.
		{Path: "/shared/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 30},
	}
}

type envReader func(string) (string, bool)

func (e envReader) str(key string) string {
	v, _ := e(key)
	return v
}

// integer and duration fall back for non-positive values: a zero limit or
// window would switch the rule off instead of blocking it. Use
// RATE_LIMIT_ENABLED=false to turn limiting off.
func (e envReader) integer(key string, fallback int) int {
	if n, err := strconv.Atoi(e.str(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func (e envReader) boolean(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(e.str(key)); err == nil {
		return b
	}
	return fallback
}

func (e envReader) duration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(e.str(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// parseIPList parses a comma-separated list of addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
