// Package llm holds vendor-agnostic helpers on top of a Completer. It covers
// structured output extraction with schema validation and the bounded
// tool calling loop which drives the agent phases.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/paulrobello/auto-tool-agent/internal/models"
)

// Extractor parses model replies into T, validating against the schema
// generated from T. The schema is also rendered into the prompt so the model
// knows the exact shape to produce.
type Extractor[T any] struct {
	schemaJSON string
	resolved   *jsonschema.Resolved
}

// NewExtractor reflects a schema from T. Construct once and reuse, schema
// reflection is not free.
func NewExtractor[T any]() (*Extractor[T], error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reflect schema: %w", err)
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema: %w", err)
	}
	return &Extractor[T]{
		schemaJSON: string(data),
		resolved:   resolved,
	}, nil
}

// SchemaInstruction returns the suffix appended to system prompts so that the
// model replies with bare json matching T.
func (e *Extractor[T]) SchemaInstruction() string {
	return fmt.Sprintf(`You must reply with a single JSON object matching this JSON Schema, and nothing else. No markdown fences, no commentary.
Schema: %v`, e.schemaJSON)
}

// Parse decodes reply content into T. The content may be wrapped in markdown
// code fences, which most models add despite instructions not to.
func (e *Extractor[T]) Parse(content string) (T, error) {
	var zero T
	raw := StripFences(content)
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, fmt.Errorf("reply is not valid json: %w", err)
	}
	if err := e.resolved.Validate(v); err != nil {
		return zero, fmt.Errorf("reply does not match schema: %w", err)
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return zero, fmt.Errorf("failed to unmarshal reply: %w", err)
	}
	return out, nil
}

// Extract runs the chat through c and parses the reply into T. On a malformed
// reply it sends the parse error back once, asking the model to correct
// itself, before giving up.
func (e *Extractor[T]) Extract(ctx context.Context, c models.Completer, chat models.Chat) (T, error) {
	var zero T
	msg, err := c.Complete(ctx, chat)
	if err != nil {
		return zero, fmt.Errorf("completion failed: %w", err)
	}
	out, parseErr := e.Parse(msg.Content)
	if parseErr == nil {
		return out, nil
	}
	chat.Messages = append(chat.Messages, msg, models.Message{
		Role: "user",
		Content: fmt.Sprintf("Your reply could not be parsed: %v. Reply again with only the corrected JSON object, nothing else.",
			parseErr),
	})
	msg, err = c.Complete(ctx, chat)
	if err != nil {
		return zero, fmt.Errorf("completion failed on repair attempt: %w", err)
	}
	out, parseErr = e.Parse(msg.Content)
	if parseErr != nil {
		return zero, fmt.Errorf("reply unparsable after repair attempt: %w", parseErr)
	}
	return out, nil
}

// StripFences removes a single wrapping markdown code fence, with or without
// a language tag, from s.
func StripFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```")
	if idx := strings.Index(out, "\n"); idx != -1 {
		firstLine := out[:idx]
		if !strings.ContainsAny(firstLine, " {[") {
			out = out[idx+1:]
		}
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
