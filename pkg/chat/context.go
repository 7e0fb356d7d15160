package chat

import (
	"fmt"

	"github.com/marketscope/cryptobot/pkg/llm"
)

// MaxHistoryTurns is how many trailing history turns are forwarded upstream.
const MaxHistoryTurns = 10

// Turn is one prior exchange supplied by the client.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnError reports a malformed history turn. Malformed history is a caller
// error and fails the request rather than being silently dropped.
type TurnError struct {
	Index int
	Field string
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("history turn %d: missing or invalid %s", e.Index, e.Field)
}

// BuildMessages assembles the upstream conversation context:
// the system prompt, the last MaxHistoryTurns history turns in order, and
// the current user message. Every supplied turn is validated first.
func BuildMessages(systemPrompt string, history []Turn, userMessage string) ([]llm.Message, error) {
	for i, turn := range history {
		switch turn.Role {
		case llm.RoleSystem, llm.RoleUser, llm.RoleAssistant:
		default:
			return nil, &TurnError{Index: i, Field: "role"}
		}
		if turn.Content == "" {
			return nil, &TurnError{Index: i, Field: "content"}
		}
	}

	kept := history
	if len(kept) > MaxHistoryTurns {
		kept = kept[len(kept)-MaxHistoryTurns:]
	}

	messages := make([]llm.Message, 0, len(kept)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range kept {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})

	return messages, nil
}
