package assistant

// ================ Config ================

// ExtractionModelConfig drives the low-temperature model used for name and
// contact field extraction from resume text.
type ExtractionModelConfig struct {
	Model       string  `envconfig:"EXTRACTION_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"EXTRACTION_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"EXTRACTION_TEMPERATURE" default:"0.1"`
}

// ChatModelConfig drives the conversational model used for follow-up question
// generation and free-form replies.
type ChatModelConfig struct {
	Model       string  `envconfig:"CHAT_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"CHAT_MAX_TOKENS" default:"2048"`
	Temperature float32 `envconfig:"CHAT_TEMPERATURE" default:"0.7"`
}

// ConversationConfig bounds history replay for free-form replies.
type ConversationConfig struct {
	MaxTurns int `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
}
