package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

// Schema is the output contract for one structured completion. It is sent to
// the provider and enforced again on the way back in.
type Schema struct {
	Name        string
	Description string

	raw        json.RawMessage
	required   []string
	properties map[string]struct{}
}

// Validator is implemented by output types with rules a JSON schema cannot
// express.
type Validator interface {
	Validate() error
}

// SchemaFor reflects T into a strict object schema: every property required,
// no additional properties.
func SchemaFor[T any](name, description string) *Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schemaObj, err := schemaToMap(reflector.Reflect(v))
	if err != nil {
		panic(fmt.Sprintf("ai: reflect schema %s: %v", name, err))
	}
	delete(schemaObj, "$schema")
	delete(schemaObj, "$id")
	ensureStrict(schemaObj)

	raw, err := json.Marshal(schemaObj)
	if err != nil {
		panic(fmt.Sprintf("ai: marshal schema %s: %v", name, err))
	}

	s := &Schema{
		Name:        name,
		Description: description,
		raw:         raw,
		properties:  make(map[string]struct{}),
	}
	if props, ok := schemaObj[propertiesKey].(map[string]interface{}); ok {
		for prop := range props {
			s.properties[prop] = struct{}{}
		}
	}
	if req, ok := schemaObj[requiredKey].([]string); ok {
		s.required = req
	}
	return s
}

// JSON returns the schema document.
func (s *Schema) JSON() json.RawMessage { return s.raw }

// Required lists the top-level properties a response must carry.
func (s *Schema) Required() []string { return append([]string(nil), s.required...) }

// Decode parses a model response into out, failing on missing or null
// required fields, unknown fields, wrong types or a failed Validate.
func (s *Schema) Decode(data []byte, out any) error {
	data = stripCodeFence(data)
	if len(data) == 0 {
		return errors.New("empty response")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("response is not a JSON object: %w", err)
	}
	for _, name := range s.required {
		v, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("missing required field %q", name)
		}
	}
	for name := range fields {
		if _, ok := s.properties[name]; !ok {
			return fmt.Errorf("unexpected field %q", name)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", s.Name, err)
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate %s: %w", s.Name, err)
		}
	}
	return nil
}

func stripCodeFence(data []byte) []byte {
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	return []byte(text)
}

func schemaToMap(schema *jsonschema.Schema) (map[string]interface{}, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// ensureStrict marks every object property required and closes every object.
// Strict structured-output modes reject schemas that do not.
func ensureStrict(schema map[string]interface{}) {
	if schemaType, ok := schema[typeKey].(string); ok && schemaType == "object" {
		schema[additionalPropertiesKey] = false

		if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
			requiredFields := make([]string, 0, len(properties))
			for propName := range properties {
				requiredFields = append(requiredFields, propName)
			}
			sort.Strings(requiredFields)
			if len(requiredFields) > 0 {
				schema[requiredKey] = requiredFields
			}
		}
	}

	if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]interface{}); ok {
				ensureStrict(propMap)
			}
		}
	}

	if items, ok := schema[itemsKey].(map[string]interface{}); ok {
		ensureStrict(items)
	}
}
