package tools

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/paulrobello/auto-tool-agent/internal/models"
)

var (
	schemaCacheMu sync.Mutex
	schemaCache   = map[string]*jsonschema.Resolved{}
)

// resolveInputSchema compiles a tool's declared input schema into a
// validator. Compiled schemas are cached per tool name since generated tools
// are invoked repeatedly within a run.
func resolveInputSchema(spec models.Specification) (*jsonschema.Resolved, error) {
	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	if resolved, ok := schemaCache[spec.Name]; ok {
		return resolved, nil
	}
	if spec.Inputs == nil {
		return nil, nil
	}
	spec.Inputs.Patch()
	data, err := json.Marshal(spec.Inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema: %w", err)
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse input schema: %w", err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input schema: %w", err)
	}
	schemaCache[spec.Name] = resolved
	return resolved, nil
}

// ValidateInput checks the input object against the tool's declared schema.
// Tools without a schema accept anything.
func ValidateInput(spec models.Specification, input models.Input) error {
	resolved, err := resolveInputSchema(spec)
	if err != nil {
		return err
	}
	if resolved == nil {
		return nil
	}
	// Round-trip so that typed values (bools, numbers) validate the same way
	// regardless of how the vendor deserialized them.
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to unmarshal input: %w", err)
	}
	if err := resolved.Validate(v); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}
	return nil
}

// ResetSchemaCache drops all compiled schemas. Called when sandbox tools are
// reloaded since their schemas may have changed.
func ResetSchemaCache() {
	schemaCacheMu.Lock()
	schemaCache = map[string]*jsonschema.Resolved{}
	schemaCacheMu.Unlock()
}

// InvalidateSchema drops one tool's compiled schema. Re-registering a tool
// under the same name must not keep validating against its old schema.
func InvalidateSchema(name string) {
	schemaCacheMu.Lock()
	delete(schemaCache, name)
	schemaCacheMu.Unlock()
}
