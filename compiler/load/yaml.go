package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML declaration document:
//
//	models:
//	  - name: List
//	    fields:
//	      - {name: title, type: "String!"}
//	    relationships:
//	      - {name: todos, kind: hasMany, target: Todo}
//
// Unknown keys are rejected. Each declaration records its source line in
// Pos.
func ParseYAML(data []byte, filename string) ([]*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("load: parse %s: %w", filename, err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err == nil {
		for i, n := range modelNodes(&root) {
			if i < len(doc.Models) && doc.Models[i] != nil {
				doc.Models[i].Pos = fmt.Sprintf("%s:%d", filename, n.Line)
			}
		}
	}
	return doc.Models, nil
}

// modelNodes returns the items of the top-level "models" sequence.
func modelNodes(root *yaml.Node) []*yaml.Node {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == "models" && m.Content[i+1].Kind == yaml.SequenceNode {
			return m.Content[i+1].Content
		}
	}
	return nil
}

// ParseJSON parses a JSON declaration document of the same shape as the
// YAML one. Unknown keys are rejected.
func ParseJSON(data []byte, filename string) ([]*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", filename, err)
	}
	for _, s := range doc.Models {
		if s != nil {
			s.Pos = filename
		}
	}
	return doc.Models, nil
}
