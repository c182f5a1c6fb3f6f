package fileio

// This file contains JSON and YAML file helpers layered on Read and Write.

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ReadJSON reads the file at path and unmarshals it into v.
func ReadJSON(path string, v any) error {
	contents, err := Read(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(contents), v); err != nil {
		return fmt.Errorf("parse json %s: %w", path, err)
	}
	return nil
}

// WriteJSON marshals v as indented JSON and writes it to path, returning the
// path written.
func WriteJSON(path string, v any, opts ...Option) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return Write(path, string(data)+"\n", opts...)
}

// ReadYAML reads the file at path and unmarshals it into v.
func ReadYAML(path string, v any) error {
	contents, err := Read(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(contents), v); err != nil {
		return fmt.Errorf("parse yaml %s: %w", path, err)
	}
	return nil
}

// WriteYAML marshals v as YAML and writes it to path, returning the path
// written.
func WriteYAML(path string, v any, opts ...Option) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	return Write(path, string(data), opts...)
}
