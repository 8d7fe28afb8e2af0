package configx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config is a merged view over one or more configuration sources.
type Config interface {
	// Get retrieves a configuration value by key.
	Get(key string) Value

	// Set sets a configuration value directly, overriding all sources.
	Set(key string, val any)

	// Has checks if a configuration key exists.
	Has(key string) bool

	// AddSource adds a configuration source.
	AddSource(source Source) Config

	// LoadAll reloads all configuration sources. Higher-priority
	// sources override lower ones on key conflicts.
	LoadAll() error
}

// Source represents a configuration source.
type Source interface {
	// Load loads configuration values from the source.
	Load() (map[string]any, error)

	// Name returns the name of the source.
	Name() string

	// Priority returns the priority of the source (higher overrides lower).
	Priority() int
}

// Value wraps a configuration value and provides typed conversions.
type Value interface {
	// IsSet returns true if the value exists.
	IsSet() bool

	// AsString returns the value as a string.
	AsString() string

	// AsStringDefault returns the value as a string or a default.
	AsStringDefault(def string) string

	// AsInt returns the value as an int.
	AsInt() int

	// AsIntDefault returns the value as an int or a default.
	AsIntDefault(def int) int

	// AsBool returns the value as a bool.
	AsBool() bool

	// AsBoolDefault returns the value as a bool or a default.
	AsBoolDefault(def bool) bool

	// AsDuration returns the value as a time.Duration.
	AsDuration() time.Duration

	// AsDurationDefault returns the value as a duration or a default.
	AsDurationDefault(def time.Duration) time.Duration

	// AsSizeBytes interprets the value as a byte size. Plain integers
	// are bytes; the suffixes k, m, and g (case-insensitive) scale by
	// powers of 1024.
	AsSizeBytes() (int64, error)
}

// New creates an empty Config.
func New() Config {
	return &config{values: make(map[string]any)}
}

type config struct {
	mu        sync.RWMutex
	values    map[string]any
	sources   []Source
	overrides map[string]any
}

func (c *config) Get(key string) Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[normalizeKey(key)]
	return &value{raw: v, set: ok}
}

func (c *config) Set(key string, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overrides == nil {
		c.overrides = make(map[string]any)
	}
	k := normalizeKey(key)
	c.overrides[k] = val
	c.values[k] = val
}

func (c *config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.values[normalizeKey(key)]
	return ok
}

func (c *config) AddSource(source Source) Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = append(c.sources, source)
	return c
}

func (c *config) LoadAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ordered := make([]Source, len(c.sources))
	copy(ordered, c.sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	merged := make(map[string]any)
	for _, src := range ordered {
		vals, err := src.Load()
		if err != nil {
			return fmt.Errorf("loading source %q: %w", src.Name(), err)
		}
		for k, v := range vals {
			merged[normalizeKey(k)] = v
		}
	}
	for k, v := range c.overrides {
		merged[k] = v
	}

	c.values = merged
	return nil
}

// normalizeKey lower-cases keys and treats '_' and '.' as the same
// separator, so UPLOAD_MAX_FILE_SIZE and upload.max_file_size match.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(key, ".", "_")
}

type value struct {
	raw any
	set bool
}

func (v *value) IsSet() bool {
	return v.set
}

func (v *value) AsString() string {
	if !v.set || v.raw == nil {
		return ""
	}
	if s, ok := v.raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v.raw)
}

func (v *value) AsStringDefault(def string) string {
	if !v.set {
		return def
	}
	return v.AsString()
}

func (v *value) AsInt() int {
	switch n := v.raw.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

func (v *value) AsIntDefault(def int) int {
	if !v.set {
		return def
	}
	return v.AsInt()
}

func (v *value) AsBool() bool {
	switch b := v.raw.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}

func (v *value) AsBoolDefault(def bool) bool {
	if !v.set {
		return def
	}
	return v.AsBool()
}

func (v *value) AsDuration() time.Duration {
	switch d := v.raw.(type) {
	case time.Duration:
		return d
	case string:
		if parsed, err := time.ParseDuration(strings.TrimSpace(d)); err == nil {
			return parsed
		}
	case int:
		return time.Duration(d) * time.Second
	}
	return 0
}

func (v *value) AsDurationDefault(def time.Duration) time.Duration {
	if !v.set {
		return def
	}
	return v.AsDuration()
}

func (v *value) AsSizeBytes() (int64, error) {
	if !v.set {
		return 0, fmt.Errorf("value is not set")
	}
	switch n := v.raw.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	}
	return ParseSizeBytes(v.AsString())
}

// ParseSizeBytes converts size strings like "512", "2k", "2m", or "1g"
// to a byte count. Multipliers are base 1024.
func ParseSizeBytes(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'k':
		multiplier = 1 << 10
		s = s[:len(s)-1]
	case 'm':
		multiplier = 1 << 20
		s = s[:len(s)-1]
	case 'g':
		multiplier = 1 << 30
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %q", s)
	}
	return n * multiplier, nil
}
