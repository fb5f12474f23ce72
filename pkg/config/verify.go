package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaNode is the subset of a JSON schema document the verifier understands
type schemaNode struct {
	Ref         string                 `json:"$ref,omitempty"`
	Type        string                 `json:"type,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Properties  map[string]*schemaNode `json:"properties,omitempty"`
	Items       *schemaNode            `json:"items,omitempty"`
	Minimum     *float64               `json:"minimum,omitempty"`
	Definitions map[string]*schemaNode `json:"$defs,omitempty"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It checks that every config key is declared by the schema, required properties are present
// and numeric minimums hold.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verify(cfg, []byte(embeddedSchema))
}

func verify(cfg *Config, schemaData []byte) error {
	var doc schemaNode
	if err := json.Unmarshal(schemaData, &doc); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root := doc.resolve(&doc)
	if root == nil {
		return errors.New("schema has no root definition")
	}
	if err := doc.checkObject(root, configMap, ""); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// resolve follows a local $ref to its definition
func (doc *schemaNode) resolve(s *schemaNode) *schemaNode {
	if s == nil || s.Ref == "" {
		return s
	}
	return doc.Definitions[strings.TrimPrefix(s.Ref, "#/$defs/")]
}

func (doc *schemaNode) checkObject(s *schemaNode, obj map[string]any, path string) error {
	for _, req := range s.Required {
		if _, ok := obj[req]; !ok {
			return fmt.Errorf("%s is required", join(path, req))
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prop, ok := s.Properties[k]
		if !ok {
			return fmt.Errorf("%s is not defined in schema", join(path, k))
		}
		if err := doc.checkValue(doc.resolve(prop), obj[k], join(path, k)); err != nil {
			return err
		}
	}
	return nil
}

func (doc *schemaNode) checkValue(s *schemaNode, v any, path string) error {
	if s == nil {
		return nil
	}
	switch val := v.(type) {
	case map[string]any:
		return doc.checkObject(s, val, path)
	case []any:
		for i, item := range val {
			if err := doc.checkValue(doc.resolve(s.Items), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case float64:
		if s.Minimum != nil && val < *s.Minimum {
			return fmt.Errorf("%s must be at least %v, got %v", path, *s.Minimum, val)
		}
	}
	return nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
