package profile

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadError{Path: path, Message: "file not found", Cause: err}
		}
		return &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &LoadError{Path: path, Message: "invalid YAML", Cause: err}
	}
	return nil
}

func writeYAML(path string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return &LoadError{Path: path, Message: "failed to encode YAML", Cause: err}
	}
	if err := enc.Close(); err != nil {
		return &LoadError{Path: path, Message: "failed to encode YAML", Cause: err}
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &LoadError{Path: path, Message: "failed to create directory", Cause: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &LoadError{Path: path, Message: "failed to write file", Cause: err}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
