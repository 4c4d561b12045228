package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envList(key string, def []string) []string {
	v := envString(key, "")
	if v == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envInt(key string, def int) (int, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a non-negative integer", ErrInvalidValue, key, v)
	}
	return i, nil
}

func envBool(key string, def bool) (bool, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidValue, key, v)
	}
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, key, v, err)
	}
	return d, nil
}

func envLevel(key string, def slog.Level) (slog.Level, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, key, v, err)
	}
	return level, nil
}
