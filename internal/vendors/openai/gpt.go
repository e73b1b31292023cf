package openai

import (
	"net/http"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

const ChatURL = "https://api.openai.com/v1/chat/completions"

type ChatGPT struct {
	Model            string                 `json:"model"`
	FrequencyPenalty float64                `json:"frequency_penalty"`
	MaxTokens        *int                   `json:"max_tokens"`
	PresencePenalty  float64                `json:"presence_penalty"`
	Temperature      float64                `json:"temperature"`
	TopP             float64                `json:"top_p"`
	URL              string                 `json:"url"`
	client           *http.Client           `json:"-"`
	apiKey           string                 `json:"-"`
	debug            bool                   `json:"-"`
	tools            []models.Specification `json:"-"`
}

var GptDefault = ChatGPT{
	Model:       "gpt-4o",
	Temperature: 1.0,
	TopP:        1.0,
	URL:         ChatURL,
}

type gptFunc struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Parameters  *models.InputSchema `json:"parameters"`
}

type gptTool struct {
	Type     string  `json:"type"`
	Function gptFunc `json:"function"`
}

type gptReqToolCall struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Function gptFuncCallArgs `json:"function"`
}

type gptFuncCallArgs struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type gptReqMessage struct {
	Role       string           `json:"role"`
	Content    string           `json:"content,omitempty"`
	ToolCalls  []gptReqToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

type gptReq struct {
	Model            string          `json:"model"`
	Messages         []gptReqMessage `json:"messages"`
	Stream           bool            `json:"stream"`
	FrequencyPenalty float64         `json:"frequency_penalty,omitempty"`
	MaxTokens        *int            `json:"max_tokens,omitempty"`
	PresencePenalty  float64         `json:"presence_penalty,omitempty"`
	Temperature      float64         `json:"temperature,omitempty"`
	TopP             float64         `json:"top_p,omitempty"`
	Tools            []gptTool       `json:"tools,omitempty"`
	ToolChoice       string          `json:"tool_choice,omitempty"`
}

type gptRespChoice struct {
	Index        int           `json:"index"`
	Message      gptReqMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type gptResp struct {
	ID      string          `json:"id"`
	Choices []gptRespChoice `json:"choices"`
	Error   *gptError       `json:"error,omitempty"`
}

type gptError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// gptifyMessages maps the internal chat onto the openai wire format. Tool
// call inputs are re-encoded as argument strings the way chatgpt wants them.
func gptifyMessages(msgs []models.Message) []gptReqMessage {
	out := make([]gptReqMessage, 0, len(msgs))
	for _, msg := range msgs {
		gm := gptReqMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, call := range msg.ToolCalls {
			gm.Content = ""
			gm.ToolCalls = append(gm.ToolCalls, gptReqToolCall{
				ID:   call.ID,
				Type: "function",
				Function: gptFuncCallArgs{
					Name:      call.Name,
					Arguments: inputsAsArguments(call.Inputs),
				},
			})
		}
		out = append(out, gm)
	}
	return out
}

// RegisterTool exposes spec on subsequent completions. Re-registering a
// name replaces the old spec.
func (g *ChatGPT) RegisterTool(spec models.Specification) {
	if spec.Inputs != nil {
		spec.Inputs.Patch()
	}
	for i, existing := range g.tools {
		if existing.Name == spec.Name {
			g.tools[i] = spec
			return
		}
	}
	g.tools = append(g.tools, spec)
}
