package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	maxConfigSize = 1024 * 1024 // 1MB is far beyond any drawer configuration
)

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ParseFormat parses a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatYAML, FormatTOML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// Load reads and validates the config file at path. Keys missing from the
// file keep their Default values; a missing file yields Default.
func Load(path string) (*File, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}
	format, err := FormatFor(expandedPath)
	if err != nil {
		return nil, err
	}

	logrus.Debug("Loading config file from: ", expandedPath)
	data, err := readFile(expandedPath)
	if os.IsNotExist(err) {
		logrus.Debug("Config file not found; using defaults")
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	f := Default()
	if err := Unmarshal(format, data, f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", expandedPath, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", expandedPath, err)
	}
	return f, nil
}

// Save writes f to path in the format chosen by its extension, creating the
// parent directory if needed.
func Save(path string, f *File) error {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return err
	}
	format, err := FormatFor(expandedPath)
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	data, err := Marshal(format, f)
	if err != nil {
		return err
	}

	logrus.Debug("Saving config file to: ", expandedPath)
	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(expandedPath, data, 0o600)
}

// Exists reports whether a config file is present at path.
func Exists(path string) (bool, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(expandedPath)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Marshal encodes f.
func Marshal(format Format, f *File) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Unmarshal decodes data onto f. For JSON, runs a case-insensitive key
// collision check before decoding.
func Unmarshal(format Format, data []byte, f *File) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, f)
	case FormatTOML:
		_, err := toml.Decode(string(data), f)
		return err
	case FormatJSON:
		if err := detectCaseInsensitiveKeyCollisions(data); err != nil {
			return err
		}
		return json.Unmarshal(data, f)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// readFile reads a file with a size limit.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), maxConfigSize)
	}
	return io.ReadAll(io.LimitReader(file, maxConfigSize))
}

// detectCaseInsensitiveKeyCollisions checks if the JSON data contains keys
// that differ only by letter case. encoding/json matches keys case-insensitively,
// so "Curve" and "curve" would silently overwrite each other.
// see: https://blog.trailofbits.com/2025/06/17/unexpected-security-footguns-in-gos-parsers/
func detectCaseInsensitiveKeyCollisions(data []byte) error {
	var res any
	// Syntax errors are left for json.Unmarshal to report.
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&res); err != nil {
		return nil
	}
	return checkKeys(res, "")
}

func checkKeys(obj any, path string) error {
	switch v := obj.(type) {
	case map[string]any:
		seen := make(map[string]string, len(v))
		for key, value := range v {
			keyPath := key
			if path != "" {
				keyPath = path + "." + key
			}
			lower := strings.ToLower(key)
			if first, ok := seen[lower]; ok {
				return KeyCollisionError{Path: keyPath, Key: key, Other: first}
			}
			seen[lower] = key
			if err := checkKeys(value, keyPath); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range v {
			if err := checkKeys(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
