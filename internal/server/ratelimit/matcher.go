package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the rule for a request, or nil when none applies.
// Exact paths win over wildcard paths, which win over prefixes. GET /health
// is never limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	matchers := []func(pattern string) bool{
		func(pattern string) bool { return pattern == path },
		func(pattern string) bool { return strings.Contains(pattern, "*") && matchSegments(pattern, path) },
		func(pattern string) bool {
			return strings.HasSuffix(pattern, "/") && !strings.Contains(pattern, "*") && strings.HasPrefix(path, pattern)
		},
	}

	for _, matches := range matchers {
		for i := range configs {
			if configs[i].Method == method && matches(configs[i].Path) {
				return &configs[i]
			}
		}
	}
	return nil
}

// matchSegments compares slash-separated segments; "*" matches any one
// non-empty segment.
func matchSegments(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] == "*" {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
