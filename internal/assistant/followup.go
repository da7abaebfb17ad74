package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/kaleem-core/server/internal/intake"
	logx "github.com/kaleem-core/server/pkg/logger"
)

const followUpPrompt = `Based on this response about a person's %s:
"%s"

Generate exactly 2 follow-up questions that would help gather deeper insights for building a professional resume.
The questions should be conversational but focused on extracting valuable professional details.

Return only the questions, numbered 1 and 2, without any additional text.`

// numbering and list markup commonly prepended by the model
const listMarkup = "0123456789.)*-# \t"

// FollowUpGenerator asks the conversational model for two clarifying
// questions about a topic. Upstream failures and malformed output fall back
// to two fixed generic questions, so callers always get a usable pair.
type FollowUpGenerator struct {
	cm ChatModel
}

func NewFollowUpGenerator(cm ChatModel) *FollowUpGenerator {
	return &FollowUpGenerator{cm: cm}
}

// Questions returns exactly two non-empty follow-up questions for the topic,
// seeded with the user's answer.
func (g *FollowUpGenerator) Questions(ctx context.Context, topic, seed string) [2]string {
	qs, err := g.generate(ctx, topic, seed)
	if err != nil {
		logx.Warn().Err(err).Str("topic", topic).Msg("follow-up generation failed, using fallback questions")
		return fallbackQuestions(topic)
	}
	return qs
}

func (g *FollowUpGenerator) generate(ctx context.Context, topic, seed string) ([2]string, error) {
	prompt := fmt.Sprintf(followUpPrompt, topic, seed)

	out, err := g.cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return [2]string{}, fmt.Errorf("generate follow-ups: %w", err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return [2]string{}, fmt.Errorf("empty follow-up response")
	}

	questions := parseQuestions(out.Content)
	if len(questions) < 2 {
		return [2]string{}, fmt.Errorf("expected 2 questions, parsed %d", len(questions))
	}
	return [2]string{questions[0], questions[1]}, nil
}

// parseQuestions strips list numbering and markup from each line and keeps
// only lines that actually contain a question mark.
func parseQuestions(content string) []string {
	var questions []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "?") {
			continue
		}
		line = strings.TrimLeft(line, listMarkup)
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == 2 {
			break
		}
	}
	return questions
}

func fallbackQuestions(topic string) [2]string {
	return [2]string{
		fmt.Sprintf("Could you elaborate more on your %s?", topic),
		fmt.Sprintf("Is there anything else about your %s you'd like to share?", topic),
	}
}

var _ intake.FollowUpGenerator = (*FollowUpGenerator)(nil)
