package intake

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	errx "github.com/kaleem-core/server/internal/core/error"
	logx "github.com/kaleem-core/server/pkg/logger"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// North-American style: optional leading +, optional parens around the
	// area code, flexible separators.
	phonePattern = regexp.MustCompile(`^\+?\(?[0-9]{3}\)?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4}$`)
)

const defaultMirrorTimeout = 5 * time.Second

// Reply is the outcome of one inbound answer.
type Reply struct {
	Text       string
	Completion int
}

// UploadReply is the outcome of a document ingestion.
type UploadReply struct {
	Name       string
	Text       string
	Completion int
}

// MachineConfig wires the state machine's collaborators. Recorder may be nil
// when no durable mirror is configured.
type MachineConfig struct {
	Store     *Store
	FollowUps FollowUpGenerator
	Contacts  ContactExtractor
	Texts     TextExtractor
	Responder Responder
	Recorder  Recorder

	// MirrorTimeout bounds each fire-and-forget durable write.
	MirrorTimeout time.Duration
}

// Machine owns the conversation state machine. It validates and records
// incoming answers, decides the next state, and renders the next prompt by
// delegating to its collaborators.
type Machine struct {
	store         *Store
	followUps     FollowUpGenerator
	contacts      ContactExtractor
	texts         TextExtractor
	responder     Responder
	recorder      Recorder
	mirrorTimeout time.Duration
}

func NewMachine(cfg MachineConfig) (*Machine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is nil")
	}
	if cfg.FollowUps == nil || cfg.Contacts == nil || cfg.Texts == nil || cfg.Responder == nil {
		return nil, fmt.Errorf("machine collaborators are not properly initialized")
	}
	timeout := cfg.MirrorTimeout
	if timeout <= 0 {
		timeout = defaultMirrorTimeout
	}
	return &Machine{
		store:         cfg.Store,
		followUps:     cfg.FollowUps,
		contacts:      cfg.Contacts,
		texts:         cfg.Texts,
		responder:     cfg.Responder,
		recorder:      cfg.Recorder,
		mirrorTimeout: timeout,
	}, nil
}

// Answer records the inbound text for the session's current state, advances
// the state, and returns the next prompt with the completion percentage.
// The session is created on first reference.
func (m *Machine) Answer(ctx context.Context, sessionID, text string) (Reply, error) {
	if sessionID == "" {
		return Reply{}, errx.NewValidation("Missing required field: user_id")
	}

	var reply Reply
	err := m.store.Update(sessionID, func(s *Session) error {
		prompt := m.advance(ctx, s, text)
		m.logExchange(s, text, prompt)
		reply = Reply{Text: prompt, Completion: s.State.Completion()}
		return nil
	})
	if err != nil {
		return Reply{}, err
	}
	return reply, nil
}

// SubmitContact validates and records contact fields submitted out of band,
// then force-transitions the session to ASK_LINKEDIN. Validation failures
// leave the session untouched.
func (m *Machine) SubmitContact(ctx context.Context, sessionID, email, phone string) (Reply, error) {
	if sessionID == "" || email == "" || phone == "" {
		return Reply{}, errx.NewValidation("Missing required fields: user_id, email, or phone")
	}
	if !emailPattern.MatchString(email) {
		return Reply{}, errx.NewValidation("Invalid email format")
	}
	if !phonePattern.MatchString(phone) {
		return Reply{}, errx.NewValidation("Invalid phone format")
	}
	if !m.store.Exists(sessionID) {
		return Reply{}, errx.NewNotFound(errx.SessionNotFoundMessage)
	}

	var reply Reply
	err := m.store.Update(sessionID, func(s *Session) error {
		s.Contact.Email = email
		s.Contact.Phone = phone
		s.State = StateAskLinkedIn
		prompt := linkedInQuestion(s.Name)

		m.mirror(sessionID, map[string]any{
			"contact_email": email,
			"contact_phone": phone,
		})
		m.logExchange(s, fmt.Sprintf("Email: %s\nPhone: %s", email, phone), prompt)

		reply = Reply{Text: prompt, Completion: s.State.Completion()}
		return nil
	})
	if err != nil {
		return Reply{}, err
	}
	return reply, nil
}

// advance mutates the session for one inbound answer and returns the next
// prompt. Called with the session's mutation lock held.
func (m *Machine) advance(ctx context.Context, s *Session, text string) string {
	switch s.State {
	case StateGreeting:
		// Input is ignored; the flow starts with the upload instruction.
		s.State = StateUploadResume
		return greetingPrompt

	case StateUploadResume:
		// Text instead of a document: remind, do not advance.
		return uploadReminder(s.Name)

	case StateAskContactInfo:
		m.parseContactLines(s, text)
		// Always advances, even when parsing found nothing.
		s.State = StateAskLinkedIn
		return linkedInQuestion(s.Name)

	case StateAskLinkedIn:
		s.LinkedInURL = strings.TrimSpace(text)
		m.mirror(s.ID, map[string]any{"linkedin_url": s.LinkedInURL})
		s.State = StateAskGoals
		s.FollowUps = 0
		return topicOpening(TopicGoals, s.Name)

	case StateAskGoals:
		return m.advanceTopic(ctx, s, TopicGoals, text)
	case StateAskValueProp:
		return m.advanceTopic(ctx, s, TopicValueProp, text)
	case StateAskAchievements:
		return m.advanceTopic(ctx, s, TopicAchievements, text)

	case StateAskEmail:
		s.Email = text
		s.State = StateComplete
		m.mirror(s.ID, map[string]any{
			"email":  text,
			"status": "information_collected",
		})
		return closingPrompt(s.Name, text)

	default:
		// COMPLETE (and anything unexpected): open-ended chat seeded with
		// the full prior exchange history.
		return m.freeFormReply(ctx, s, text)
	}
}

// advanceTopic runs the follow-up sub-protocol shared by the three topic
// states: primary answer, two follow-ups, then the next topic.
func (m *Machine) advanceTopic(ctx context.Context, s *Session, t Topic, text string) string {
	answers := s.topic(t)

	switch s.FollowUps {
	case 0:
		answers.Primary = text
		s.PendingQuestions = m.followUps.Questions(ctx, t.Label(), text)
		s.FollowUps = 1
		return topicTransition(t, 1, s.Name, s.PendingQuestions[0])

	case 1:
		answers.FollowUp1 = text
		second := s.PendingQuestions[1]
		if second == "" {
			// Cache lost (e.g. restored session); regenerate from the same seed.
			second = m.followUps.Questions(ctx, t.Label(), answers.Primary)[1]
		}
		s.FollowUps = 2
		return topicTransition(t, 2, s.Name, second)

	default:
		answers.FollowUp2 = text
		m.mirrorTopic(s.ID, t, *answers)
		s.FollowUps = 0
		s.PendingQuestions = [2]string{}

		switch t {
		case TopicGoals:
			s.State = StateAskValueProp
			return topicOpening(TopicValueProp, s.Name)
		case TopicValueProp:
			s.State = StateAskAchievements
			return topicOpening(TopicAchievements, s.Name)
		default:
			s.State = StateAskEmail
			return emailQuestion(s.Name)
		}
	}
}

// parseContactLines scans free text line by line. A line with '@' and '.' is
// an email; a line of at least 7 characters containing a digit is a phone
// number. First match wins per field; later matches are ignored.
func (m *Machine) parseContactLines(s *Session, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.Contains(line, "@") && strings.Contains(line, "."):
			if s.Contact.Email == "" {
				s.Contact.Email = line
			}
		case len(line) >= 7 && strings.ContainsFunc(line, unicode.IsDigit):
			if s.Contact.Phone == "" {
				s.Contact.Phone = line
			}
		}
	}
}

func (m *Machine) freeFormReply(ctx context.Context, s *Session, text string) string {
	reply, err := m.responder.Reply(ctx, s.Name, s.Exchanges, text)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", s.ID).Msg("free-form generation failed, using fallback")
		return completeFallback(s.Name)
	}
	return reply
}

// logExchange appends the turn to the session's in-memory log and mirrors it
// to the durable chat history.
func (m *Machine) logExchange(s *Session, userMsg, assistantMsg string) {
	e := Exchange{
		Timestamp:         time.Now().UTC(),
		UserMessage:       userMsg,
		AssistantResponse: assistantMsg,
	}
	s.Exchanges = append(s.Exchanges, e)

	if m.recorder == nil {
		return
	}
	id := s.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.mirrorTimeout)
		defer cancel()
		if err := m.recorder.AppendExchange(ctx, id, e); err != nil {
			logx.Warn().Err(err).Str("session_id", id).Msg("chat history mirror write failed")
		}
	}()
}

// mirror issues a fire-and-forget field-level upsert against the durable
// store. Failures are logged and never corrupt or block the live session.
func (m *Machine) mirror(sessionID string, fields map[string]any) {
	if m.recorder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.mirrorTimeout)
		defer cancel()
		if err := m.recorder.UpsertFields(ctx, sessionID, fields); err != nil {
			logx.Warn().Err(err).Str("session_id", sessionID).Msg("durable mirror write failed")
		}
	}()
}

func (m *Machine) mirrorTopic(sessionID string, t Topic, answers TopicAnswers) {
	prefix := map[Topic]string{
		TopicGoals:        "professional_goals",
		TopicValueProp:    "value_proposition",
		TopicAchievements: "achievements",
	}[t]
	m.mirror(sessionID, map[string]any{
		prefix:                answers.Primary,
		prefix + "_followup1": answers.FollowUp1,
		prefix + "_followup2": answers.FollowUp2,
	})
}
