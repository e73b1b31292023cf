package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/paulrobello/auto-tool-agent/internal/models"
)

// Invoker executes a tool call and returns its textual output. Failures come
// back as strings so the model can react to them.
type Invoker func(call models.Call) string

// ToolLoop completes chat and resolves tool calls until the model replies
// with plain text or maxCalls tool invocations have been spent. The final
// assistant message and the chat including every exchanged message are
// returned.
func ToolLoop(ctx context.Context, c models.Completer, chat models.Chat, invoke Invoker, maxCalls int) (models.Message, models.Chat, error) {
	amCalls := 0
	budgetSpent := false
	for {
		msg, err := c.Complete(ctx, chat)
		if err != nil {
			return models.Message{}, chat, fmt.Errorf("completion failed: %w", err)
		}
		chat.Messages = append(chat.Messages, msg)
		if len(msg.ToolCalls) == 0 {
			return msg, chat, nil
		}
		if budgetSpent {
			return models.Message{}, chat, fmt.Errorf("model kept calling tools after %v call budget was spent", maxCalls)
		}
		for _, call := range msg.ToolCalls {
			call.Patch()
			ancli.Okf("%v\n", call.PrettyPrint())
			out := invoke(call)
			amCalls++
			if amCalls > maxCalls {
				out = "ERROR: No more tool calls allowed"
			}
			if out == "" {
				// Chatgpt rejects empty tool replies, even valid ones
				out = "<EMPTY-RESPONSE>"
			}
			slog.Debug("tool call", "name", call.Name, "output_len", len(out))
			chat.Messages = append(chat.Messages, models.Message{
				Role:       "tool",
				Content:    out,
				ToolCallID: call.ID,
			})
		}
		if amCalls > maxCalls {
			budgetSpent = true
			ancli.Noticef("tool call budget spent, asking for a final answer\n")
			chat.Messages = append(chat.Messages, models.Message{
				Role:    "user",
				Content: "You have no tool calls left. Answer with what you have.",
			})
		}
	}
}
