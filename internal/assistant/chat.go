package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/kaleem-core/server/internal/intake"
)

const chatSystemPrompt = `You are Kaleem, a friendly and helpful resume builder assistant. Your task is to collect information from users to help build their professional resume.

Be conversational and friendly%s.
Ask thoughtful follow-up questions (2 questions maximum) based on their responses to gather deeper insights.

Focus on understanding:
1. Their professional goals for the next 1-3 years
2. What industries or roles they're targeting
3. Their unique value proposition - what they want to be known for professionally
4. Their key achievements with measurable results
5. Their technical and soft skills that differentiate them`

// Chat produces free-form replies once the structured flow has completed,
// replaying a bounded window of the session's prior exchanges.
type Chat struct {
	cm       ChatModel
	maxTurns int
}

func NewChat(cm ChatModel, cfg ConversationConfig) *Chat {
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 20
	}
	return &Chat{cm: cm, maxTurns: maxTurns}
}

// Reply generates a response to input, personalized with the display name and
// seeded with the prior exchange history.
func (c *Chat) Reply(ctx context.Context, name string, history []intake.Exchange, input string) (string, error) {
	messages := []*schema.Message{schema.SystemMessage(systemPrompt(name))}

	for _, ex := range trimTail(history, c.maxTurns) {
		if ex.UserMessage != "" {
			messages = append(messages, schema.UserMessage(ex.UserMessage))
		}
		if ex.AssistantResponse != "" {
			messages = append(messages, schema.AssistantMessage(ex.AssistantResponse, nil))
		}
	}
	messages = append(messages, schema.UserMessage(input))

	out, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("free-form reply: %w", err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", fmt.Errorf("empty model response")
	}
	return strings.TrimSpace(out.Content), nil
}

func systemPrompt(name string) string {
	mention := ""
	if name != "" {
		mention = fmt.Sprintf(", addressing the user by their name: %s", name)
	}
	return fmt.Sprintf(chatSystemPrompt, mention)
}

// trimTail keeps the most recent maxTurns exchanges.
func trimTail(history []intake.Exchange, maxTurns int) []intake.Exchange {
	if len(history) <= maxTurns {
		return history
	}
	return history[len(history)-maxTurns:]
}

var _ intake.Responder = (*Chat)(nil)
