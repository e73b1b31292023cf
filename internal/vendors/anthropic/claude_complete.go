package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/paulrobello/auto-tool-agent/internal/models"
)

// Complete sends the entire chat and returns the assistant reply. Tool use
// blocks are surfaced as ToolCalls on the returned message.
func (c *Claude) Complete(ctx context.Context, chat models.Chat) (models.Message, error) {
	req := claudeReq{
		Model:         c.Model,
		Messages:      claudifyMessages(chat.Messages),
		MaxTokens:     c.MaxTokens,
		Stream:        false,
		Temperature:   c.Temperature,
		StopSequences: c.StopSequences,
	}
	if sysMsg, err := chat.FirstSystemMessage(); err == nil {
		req.System = sysMsg.Content
	}
	for _, spec := range c.tools {
		req.Tools = append(req.Tools, claudeTool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: spec.Inputs,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to marshal claude request: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("claude request: %v\n", debug.IndentedJsonFmt(req)))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Url, bytes.NewReader(body))
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", c.AnthropicVersion)
	httpReq.Header.Set("content-type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to read response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return models.Message{}, fmt.Errorf("non-OK status: %v, body: %v", httpResp.Status, string(respBody))
	}

	var resp claudeResp
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return models.Message{}, fmt.Errorf("failed to unmarshal claude response: %w", err)
	}
	if resp.Error != nil {
		return models.Message{}, fmt.Errorf("claude error: %v: %v", resp.Error.Type, resp.Error.Message)
	}

	msg := models.Message{Role: "assistant"}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			msg.Content += block.Text
		case "tool_use":
			msg.ToolCalls = append(msg.ToolCalls, models.Call{
				ID:     block.ID,
				Name:   block.Name,
				Type:   "function",
				Inputs: block.Input,
			})
		}
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("claude reply: %v\n", debug.IndentedJsonFmt(msg)))
	}
	return msg, nil
}
