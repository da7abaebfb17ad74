package intake

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ContactInfo holds the structured contact fields, either parsed out of an
// uploaded resume or supplied by the user. Empty string means absent.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin_url,omitempty"`
}

// Complete reports whether both essential fields (email and phone) are present.
func (c ContactInfo) Complete() bool {
	return c.Email != "" && c.Phone != ""
}

// TopicAnswers accumulates one topic's primary answer and its two follow-ups.
// Once FollowUp2 is recorded the state machine never re-enters the topic, so
// the slots are effectively immutable from then on.
type TopicAnswers struct {
	Primary   string `json:"primary"`
	FollowUp1 string `json:"followup1"`
	FollowUp2 string `json:"followup2"`
}

// Exchange is one user/assistant turn in the session's chat log.
type Exchange struct {
	Timestamp         time.Time `json:"timestamp"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
}

// Session tracks one user's progress through the intake flow. The in-memory
// copy is authoritative for the live session; the durable mirror trails it.
type Session struct {
	ID string

	// RecordID keys the durable mirror record independently of the
	// client-supplied session id.
	RecordID string

	State      State
	Name       string
	ResumeText string
	Contact    ContactInfo

	LinkedInURL  string
	Goals        TopicAnswers
	ValueProp    TopicAnswers
	Achievements TopicAnswers
	Email        string

	// FollowUps is the sub-step within the current topic state (0..2).
	// It is reset to 0 on entering any topic state and meaningless elsewhere.
	FollowUps int

	// PendingQuestions caches the generated follow-up pair for the current
	// topic so sub-step 1 reuses the second question instead of regenerating.
	PendingQuestions [2]string

	Exchanges []Exchange

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		RecordID:  uuid.NewString(),
		State:     StateGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// topic returns the answer slots for the given topic.
func (s *Session) topic(t Topic) *TopicAnswers {
	switch t {
	case TopicGoals:
		return &s.Goals
	case TopicValueProp:
		return &s.ValueProp
	default:
		return &s.Achievements
	}
}

// Profile holds candidate fields extracted from raw resume text.
type Profile struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
}

// FollowUpGenerator produces exactly two non-empty clarifying questions for a
// topic. Implementations must recover from upstream failure with fallback
// questions rather than returning an error.
type FollowUpGenerator interface {
	Questions(ctx context.Context, topic string, seed string) [2]string
}

// ContactExtractor derives candidate name and contact fields from resume
// text. Structured-parse failures yield absent fields, not errors.
type ContactExtractor interface {
	Extract(ctx context.Context, resumeText string) (Profile, error)
}

// Responder handles free-form conversation once the structured flow is done,
// seeded with the session's prior exchanges.
type Responder interface {
	Reply(ctx context.Context, name string, history []Exchange, input string) (string, error)
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Text(filename string, data []byte) (string, error)
}

// Recorder is the durable mirror: field-level upserts on a session record
// plus an append-only chat log. Writes are best effort and must never block
// the response path.
type Recorder interface {
	UpsertFields(ctx context.Context, sessionID string, fields map[string]any) error
	AppendExchange(ctx context.Context, sessionID string, exchange Exchange) error
}
