package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponse struct {
	content string
	err     error
}

// fakeChatModel replays queued responses and records every request.
type fakeChatModel struct {
	responses []fakeResponse
	requests  [][]*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.requests = append(f.requests, input)
	if len(f.responses) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.responses[0]
	f.responses = f.responses[1:]
	if res.err != nil {
		return nil, res.err
	}
	return schema.AssistantMessage(res.content, nil), nil
}

func (f *fakeChatModel) enqueue(content string, err error) {
	f.responses = append(f.responses, fakeResponse{content: content, err: err})
}

func TestQuestionsParsesNumberedOutput(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("1. What metrics did you improve?\n2. Which role are you targeting next?", nil)

	qs := NewFollowUpGenerator(cm).Questions(context.Background(), "career goals", "become a lead")

	assert.Equal(t, "What metrics did you improve?", qs[0])
	assert.Equal(t, "Which role are you targeting next?", qs[1])

	require.Len(t, cm.requests, 1)
	prompt := cm.requests[0][len(cm.requests[0])-1].Content
	assert.Contains(t, prompt, "career goals")
	assert.Contains(t, prompt, "become a lead")
}

func TestQuestionsStripsListMarkup(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("- What team size have you led?\n* Where do you want to grow?", nil)

	qs := NewFollowUpGenerator(cm).Questions(context.Background(), "career goals", "seed")

	assert.Equal(t, "What team size have you led?", qs[0])
	assert.Equal(t, "Where do you want to grow?", qs[1])
}

func TestQuestionsFiltersNonQuestionLines(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("Here are two follow-ups:\n1. What stack do you use?\nGreat answer!\n2. Why that industry?\nThanks.", nil)

	qs := NewFollowUpGenerator(cm).Questions(context.Background(), "career goals", "seed")

	assert.Equal(t, "What stack do you use?", qs[0])
	assert.Equal(t, "Why that industry?", qs[1])
}

func TestQuestionsFallsBackOnUpstreamError(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("", errors.New("rate limited"))

	qs := NewFollowUpGenerator(cm).Questions(context.Background(), "career goals", "seed")

	assert.Equal(t, "Could you elaborate more on your career goals?", qs[0])
	assert.Equal(t, "Is there anything else about your career goals you'd like to share?", qs[1])
	for _, q := range qs {
		assert.NotEmpty(t, q)
		assert.Contains(t, q, "career goals")
	}
}

func TestQuestionsFallsBackWhenTooFewQuestions(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("1. Only one question here?", nil)

	qs := NewFollowUpGenerator(cm).Questions(context.Background(), "value proposition", "seed")

	assert.Contains(t, qs[0], "value proposition")
	assert.Contains(t, qs[1], "value proposition")
}

func TestQuestionsFallsBackOnEmptyResponse(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("   \n  ", nil)

	qs := NewFollowUpGenerator(cm).Questions(context.Background(), "achievements", "seed")

	assert.Contains(t, qs[0], "achievements")
	assert.Contains(t, qs[1], "achievements")
}

func TestParseQuestionsTakesFirstTwo(t *testing.T) {
	got := parseQuestions("1. One?\n2. Two?\n3. Three?")
	require.Len(t, got, 2)
	assert.Equal(t, []string{"One?", "Two?"}, got)
}
