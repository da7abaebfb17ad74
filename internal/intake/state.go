package intake

// State identifies the session's position in the intake flow. Transitions are
// forward-only; the three topic states additionally cycle through follow-up
// sub-steps 0, 1, 2 before advancing.
type State int

const (
	StateGreeting State = iota
	StateUploadResume
	StateAskContactInfo
	StateAskLinkedIn
	StateAskGoals
	StateAskValueProp
	StateAskAchievements
	StateAskEmail
	StateComplete
)

var stateNames = [...]string{
	StateGreeting:        "GREETING",
	StateUploadResume:    "UPLOAD_RESUME",
	StateAskContactInfo:  "ASK_CONTACT_INFO",
	StateAskLinkedIn:     "ASK_LINKEDIN",
	StateAskGoals:        "ASK_GOALS",
	StateAskValueProp:    "ASK_VALUE_PROP",
	StateAskAchievements: "ASK_ACHIEVEMENTS",
	StateAskEmail:        "ASK_EMAIL",
	StateComplete:        "COMPLETE",
}

func (s State) String() string {
	if s < StateGreeting || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// completionSteps maps every state onto the user-facing progress scale.
var completionSteps = [...]int{
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

// Completion projects the state onto a completion percentage for display.
// Sub-step progress within a topic does not move the needle; out-of-range
// states map to 0.
func (s State) Completion() int {
	if s < StateGreeting || int(s) >= len(completionSteps) {
		return 0
	}
	return completionSteps[s]
}

// Topic is one of the three free-text subjects collected with a primary
// answer plus two follow-ups.
type Topic int

const (
	TopicGoals Topic = iota
	TopicValueProp
	TopicAchievements
)

// Label is the human phrase used in generation prompts and fallback questions.
func (t Topic) Label() string {
	switch t {
	case TopicGoals:
		return "career goals"
	case TopicValueProp:
		return "value proposition"
	case TopicAchievements:
		return "achievements"
	default:
		return "background"
	}
}
