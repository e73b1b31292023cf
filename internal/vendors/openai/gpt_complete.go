package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/paulrobello/auto-tool-agent/internal/models"
)

func inputsAsArguments(inputs *models.Input) string {
	if inputs == nil {
		return "{}"
	}
	b, err := json.Marshal(inputs)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (g *ChatGPT) constructRequest(chat models.Chat) gptReq {
	req := gptReq{
		Model:            g.Model,
		Messages:         gptifyMessages(chat.Messages),
		Stream:           false,
		FrequencyPenalty: g.FrequencyPenalty,
		MaxTokens:        g.MaxTokens,
		PresencePenalty:  g.PresencePenalty,
		Temperature:      g.Temperature,
		TopP:             g.TopP,
	}
	for _, spec := range g.tools {
		req.Tools = append(req.Tools, gptTool{
			Type: "function",
			Function: gptFunc{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Inputs,
			},
		})
	}
	if len(req.Tools) > 0 {
		req.ToolChoice = "auto"
	}
	return req
}

// Complete sends the chat to the completions endpoint and returns the first
// choice. Tool calls from the model have their argument strings decoded back
// into inputs so that callers never touch the wire format.
func (g *ChatGPT) Complete(ctx context.Context, chat models.Chat) (models.Message, error) {
	req := g.constructRequest(chat)
	if g.debug {
		slog.Info("gpt request", "req", debug.IndentedJsonFmt(req))
	}
	body, err := json.Marshal(req)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %v", g.apiKey))

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to do request: %w", err)
	}
	defer httpResp.Body.Close()
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to read response body: %w", err)
	}
	var resp gptResp
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return models.Message{}, fmt.Errorf("failed to unmarshal response: %w, body: %v", err, string(respBody))
	}
	if resp.Error != nil {
		return models.Message{}, fmt.Errorf("gpt error, type: %v, message: %v", resp.Error.Type, resp.Error.Message)
	}
	if httpResp.StatusCode != http.StatusOK {
		return models.Message{}, fmt.Errorf("unexpected status code: %v, body: %v", httpResp.StatusCode, string(respBody))
	}
	if len(resp.Choices) == 0 {
		return models.Message{}, fmt.Errorf("no choices in response, body: %v", string(respBody))
	}
	if g.debug {
		slog.Info("gpt response", "resp", debug.IndentedJsonFmt(resp))
	}
	choice := resp.Choices[0].Message
	msg := models.Message{
		Role:    "assistant",
		Content: choice.Content,
	}
	for _, tc := range choice.ToolCalls {
		var inputs models.Input
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &inputs); err != nil {
			return models.Message{}, fmt.Errorf("failed to unmarshal tool call arguments for '%v': %w", tc.Function.Name, err)
		}
		msg.ToolCalls = append(msg.ToolCalls, models.Call{
			ID:     tc.ID,
			Name:   tc.Function.Name,
			Type:   "function",
			Inputs: &inputs,
		})
	}
	return msg, nil
}
