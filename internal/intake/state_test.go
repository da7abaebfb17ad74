package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionTable(t *testing.T) {
	expected := map[State]int{
		StateGreeting:        0,
		StateUploadResume:    10,
		StateAskContactInfo:  20,
		StateAskLinkedIn:     30,
		StateAskGoals:        50,
		StateAskValueProp:    65,
		StateAskAchievements: 80,
		StateAskEmail:        90,
		StateComplete:        100,
	}
	for state, want := range expected {
		assert.Equal(t, want, state.Completion(), "state %s", state)
	}
}

func TestCompletionMonotonic(t *testing.T) {
	prev := -1
	for s := StateGreeting; s <= StateComplete; s++ {
		pct := s.Completion()
		assert.Greater(t, pct, prev, "completion must increase at %s", s)
		prev = pct
	}
}

func TestCompletionUnknownState(t *testing.T) {
	assert.Equal(t, 0, State(-1).Completion())
	assert.Equal(t, 0, State(42).Completion())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "GREETING", StateGreeting.String())
	assert.Equal(t, "COMPLETE", StateComplete.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
}

func TestTopicLabels(t *testing.T) {
	assert.Equal(t, "career goals", TopicGoals.Label())
	assert.Equal(t, "value proposition", TopicValueProp.Label())
	assert.Equal(t, "achievements", TopicAchievements.Label())
}
