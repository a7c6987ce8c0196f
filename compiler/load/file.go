package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File loads the declarations of one document. The format is chosen by the
// file extension: .yaml/.yml, .json or .graphql/.gql.
func File(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data, path)
	case ".json":
		return ParseJSON(data, path)
	case ".graphql", ".gql":
		return ParseSDL(string(data), path)
	default:
		return nil, fmt.Errorf("load: %s: unsupported document type %q", path, ext)
	}
}

// Files loads several documents and concatenates their declarations in
// argument order.
func Files(paths ...string) ([]*Schema, error) {
	var schemas []*Schema
	for _, p := range paths {
		s, err := File(p)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s...)
	}
	return schemas, nil
}

// Supported reports whether File can load the given path.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".graphql", ".gql":
		return true
	}
	return false
}
