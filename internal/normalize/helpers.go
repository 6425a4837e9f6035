package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

func getMap(rec map[string]any, key string) (map[string]any, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func getSlice(rec map[string]any, key string) ([]any, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

func getString(rec map[string]any, key string) (string, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return trim(s), true
}

func getStringPtr(rec map[string]any, key string) *string {
	s, ok := getString(rec, key)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func getFloat(rec map[string]any, key string) (float64, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		// the ingester accepts what arrives — a numeric field sent as a
		// quoted string still parses; anything else is a drop (§4.3).
		return parseFloatStrict(n)
	default:
		return 0, false
	}
}

func parseFloatStrict(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func getFloatPtr(rec map[string]any, key string) *float64 {
	f, ok := getFloat(rec, key)
	if !ok {
		return nil
	}
	return &f
}

func getInt32(rec map[string]any, key string, def int32) int32 {
	f, ok := getFloat(rec, key)
	if !ok {
		return def
	}
	return int32(f)
}

func getBool(rec map[string]any, key string) bool {
	v, ok := rec[key]
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func trim(s string) string { return strings.TrimSpace(s) }
