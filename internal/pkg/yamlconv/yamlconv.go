// Package yamlconv decodes YAML documents into types that only know JSON.
// Authored chains use custom JSON decoders, so YAML is routed through JSON
// rather than decoded directly.
package yamlconv

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

// Unmarshal decodes YAML (or JSON, which is valid YAML) into target using
// target's JSON decoding
func Unmarshal(data []byte, target any) error {
	encoded, err := ToJSON(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(encoded, target); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid document")
	}
	return nil
}

// ToJSON converts a YAML document to JSON
func ToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid yaml")
	}

	encoded, err := json.Marshal(normalize(raw))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to convert yaml")
	}
	return encoded, nil
}

// normalize rewrites non-string map keys so encoding/json accepts the tree
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
