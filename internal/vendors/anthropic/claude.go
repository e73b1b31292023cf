package anthropic

import (
	"net/http"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

const ClaudeURL = "https://api.anthropic.com/v1/messages"

type Claude struct {
	Model            string                 `json:"model"`
	MaxTokens        int                    `json:"max_tokens"`
	Url              string                 `json:"url"`
	AnthropicVersion string                 `json:"anthropic-version"`
	Temperature      float64                `json:"temperature"`
	TopP             float64                `json:"top_p"`
	TopK             int                    `json:"top_k"`
	StopSequences    []string               `json:"stop_sequences"`
	client           *http.Client           `json:"-"`
	apiKey           string                 `json:"-"`
	debug            bool                   `json:"-"`
	tools            []models.Specification `json:"-"`
}

var ClaudeDefault = Claude{
	Model:            "claude-3-5-sonnet-latest",
	Url:              ClaudeURL,
	AnthropicVersion: "2023-06-01",
	Temperature:      0.7,
	MaxTokens:        4096,
	TopP:             -1,
	TopK:             -1,
	StopSequences:    make([]string, 0),
}

type claudeTool struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	InputSchema *models.InputSchema `json:"input_schema"`
}

type claudeReqMessage struct {
	Role    string `json:"role"`
	Content []any  `json:"content"`
}

type claudeReq struct {
	Model         string             `json:"model"`
	Messages      []claudeReqMessage `json:"messages"`
	MaxTokens     int                `json:"max_tokens"`
	Stream        bool               `json:"stream"`
	System        string             `json:"system,omitempty"`
	Temperature   float64            `json:"temperature"`
	StopSequences []string           `json:"stop_sequences,omitempty"`
	Tools         []claudeTool       `json:"tools,omitempty"`
}

type textContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolUseContentBlock struct {
	Type  string        `json:"type"`
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Input *models.Input `json:"input,omitempty"`
}

type toolResultContentBlock struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	ToolUseID string `json:"tool_use_id"`
}

type claudeRespBlock struct {
	Type  string        `json:"type"`
	ID    string        `json:"id,omitempty"`
	Name  string        `json:"name,omitempty"`
	Text  string        `json:"text,omitempty"`
	Input *models.Input `json:"input,omitempty"`
}

type tokenInfo struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type claudeResp struct {
	Content    []claudeRespBlock `json:"content"`
	ID         string            `json:"id"`
	Model      string            `json:"model"`
	Role       string            `json:"role"`
	StopReason string            `json:"stop_reason"`
	Type       string            `json:"type"`
	Usage      tokenInfo         `json:"usage"`
	Error      *claudeError      `json:"error,omitempty"`
}

type claudeError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// claudifyMessages converts from 'normal' openai chat format into the format
// which claude prefers. The system message is carried separately in the
// request, tool outputs become tool_result blocks, and consecutive messages
// of the same role are merged.
func claudifyMessages(msgs []models.Message) []claudeReqMessage {
	claudeMsgs := make([]claudeReqMessage, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case "system":
			// Handled via the request's system field
			continue
		case "tool":
			claudeMsgs = append(claudeMsgs, claudeReqMessage{
				Role: "user",
				Content: []any{toolResultContentBlock{
					Type:      "tool_result",
					Content:   msg.Content,
					ToolUseID: msg.ToolCallID,
				}},
			})
		case "assistant":
			content := make([]any, 0, 1+len(msg.ToolCalls))
			if msg.Content != "" {
				content = append(content, textContentBlock{Type: "text", Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				content = append(content, toolUseContentBlock{
					Type:  "tool_use",
					ID:    call.ID,
					Name:  call.Name,
					Input: call.Inputs,
				})
			}
			claudeMsgs = append(claudeMsgs, claudeReqMessage{Role: "assistant", Content: content})
		default:
			claudeMsgs = append(claudeMsgs, claudeReqMessage{
				Role:    "user",
				Content: []any{textContentBlock{Type: "text", Text: msg.Content}},
			})
		}
	}

	// Merge consecutive same-role messages into the first one
	for i := 1; i < len(claudeMsgs); {
		if claudeMsgs[i].Role == claudeMsgs[i-1].Role {
			claudeMsgs[i-1].Content = append(claudeMsgs[i-1].Content, claudeMsgs[i].Content...)
			claudeMsgs = append(claudeMsgs[:i], claudeMsgs[i+1:]...)
		} else {
			i++
		}
	}

	// Claude requires the conversation to start from a user message
	if len(claudeMsgs) > 0 && claudeMsgs[0].Role == "assistant" {
		claudeMsgs = claudeMsgs[1:]
	}

	return claudeMsgs
}

// RegisterTool exposes spec on subsequent completions.
func (c *Claude) RegisterTool(spec models.Specification) {
	if spec.Inputs != nil {
		spec.Inputs.Patch()
	}
	for i, existing := range c.tools {
		if existing.Name == spec.Name {
			c.tools[i] = spec
			return
		}
	}
	c.tools = append(c.tools, spec)
}
