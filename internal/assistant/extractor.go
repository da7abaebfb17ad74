package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/kaleem-core/server/internal/intake"
	logx "github.com/kaleem-core/server/pkg/logger"
)

const (
	// resume text is clipped before prompting; names sit at the top and
	// contact details rarely appear past the first pages
	nameClipLen    = 2000
	contactClipLen = 3000
)

const namePrompt = `Extract only the full name of the person from this resume text. Return only the name, nothing else.

Resume text:
%s

Name:`

const contactPrompt = `Extract available contact information from this resume text. Return a JSON with these keys:
- email (if found)
- phone (if found)
- linkedin_url (if found)

If any piece of information is not found, set its value to null.

Resume text:
%s`

// Extractor derives the candidate's name and contact fields from raw resume
// text using the low-temperature extraction model. Every failure degrades to
// absent fields; the upload is never aborted by the extractor.
type Extractor struct {
	cm ChatModel
}

func NewExtractor(cm ChatModel) *Extractor {
	return &Extractor{cm: cm}
}

// Extract returns the best-effort profile for the resume text.
func (e *Extractor) Extract(ctx context.Context, resumeText string) (intake.Profile, error) {
	var p intake.Profile

	name, err := e.predict(ctx, fmt.Sprintf(namePrompt, clip(resumeText, nameClipLen)))
	if err != nil {
		logx.Warn().Err(err).Msg("name extraction failed")
	} else {
		p.Name = strings.TrimSpace(name)
	}

	raw, err := e.predict(ctx, fmt.Sprintf(contactPrompt, clip(resumeText, contactClipLen)))
	if err != nil {
		logx.Warn().Err(err).Msg("contact extraction failed")
		return p, nil
	}

	var fields struct {
		Email       *string `json:"email"`
		Phone       *string `json:"phone"`
		LinkedinURL *string `json:"linkedin_url"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &fields); err != nil {
		logx.Warn().Err(err).Msg("contact extraction returned unparseable JSON")
		return p, nil
	}

	if fields.Email != nil {
		p.Email = strings.TrimSpace(*fields.Email)
	}
	if fields.Phone != nil {
		p.Phone = strings.TrimSpace(*fields.Phone)
	}
	if fields.LinkedinURL != nil {
		p.LinkedIn = strings.TrimSpace(*fields.LinkedinURL)
	}
	return p, nil
}

func (e *Extractor) predict(ctx context.Context, prompt string) (string, error) {
	out, err := e.cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", fmt.Errorf("empty model response")
	}
	return out.Content, nil
}

// cleanJSON strips markdown code fences the model tends to wrap JSON in.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ intake.ContactExtractor = (*Extractor)(nil)
