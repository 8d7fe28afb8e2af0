package configx

import (
	"bufio"
	"os"
	"strings"
)

// EnvSource loads configuration from environment variables.
type EnvSource struct {
	prefix   string
	priority int
}

// NewEnvSource creates an environment variable source. Only variables
// starting with prefix are included; the prefix is stripped from keys.
func NewEnvSource(prefix string, priority int) Source {
	return &EnvSource{prefix: prefix, priority: priority}
}

// Load loads configuration values from environment variables.
func (s *EnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key, val := parts[0], parts[1]
		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
			key = strings.TrimPrefix(key, "_")
		}

		result[key] = val
	}

	return result, nil
}

// Name returns the name of the source.
func (s *EnvSource) Name() string {
	return "env:" + s.prefix
}

// Priority returns the priority of the source.
func (s *EnvSource) Priority() int {
	return s.priority
}

// MapSource serves configuration from an in-memory map. Useful for
// defaults and for tests.
type MapSource struct {
	name     string
	values   map[string]any
	priority int
}

// NewMapSource creates a map-backed source.
func NewMapSource(name string, values map[string]any, priority int) Source {
	return &MapSource{name: name, values: values, priority: priority}
}

// Load returns a copy of the underlying map.
func (s *MapSource) Load() (map[string]any, error) {
	result := make(map[string]any, len(s.values))
	for k, v := range s.values {
		result[k] = v
	}
	return result, nil
}

// Name returns the name of the source.
func (s *MapSource) Name() string {
	return s.name
}

// Priority returns the priority of the source.
func (s *MapSource) Priority() int {
	return s.priority
}

// FileSource loads KEY=VALUE pairs from a dotenv-style file. Lines
// starting with '#' and blank lines are skipped.
type FileSource struct {
	path     string
	priority int
	optional bool
}

// NewFileSource creates a dotenv file source. Optional sources do not
// fail when the file is missing.
func NewFileSource(path string, priority int, optional bool) Source {
	return &FileSource{path: path, priority: priority, optional: optional}
}

// Load reads and parses the file.
func (s *FileSource) Load() (map[string]any, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if s.optional && os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	defer f.Close()

	result := make(map[string]any)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		result[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Name returns the name of the source.
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Priority returns the priority of the source.
func (s *FileSource) Priority() int {
	return s.priority
}
