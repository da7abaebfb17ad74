package intake

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kaleem-core/server/internal/document"

	errx "github.com/kaleem-core/server/internal/core/error"
	logx "github.com/kaleem-core/server/pkg/logger"
)

// IngestDocument extracts text from an uploaded resume, derives the display
// name and contact fields, and routes the session to ASK_CONTACT_INFO or
// ASK_LINKEDIN depending on what the resume already contained. Extraction
// failures reject the document without mutating the session beyond existence.
func (m *Machine) IngestDocument(ctx context.Context, sessionID, filename string, data []byte) (UploadReply, error) {
	if sessionID == "" {
		return UploadReply{}, errx.NewValidation("Missing required field: user_id")
	}
	if filename == "" {
		return UploadReply{}, errx.NewValidation("No selected file")
	}

	text, err := m.texts.Text(filename, data)
	if err != nil {
		if errors.Is(err, document.ErrUnsupported) {
			return UploadReply{}, errx.New(err, http.StatusBadRequest,
				"Invalid file format. Please upload a PDF, DOCX, or TXT resume.")
		}
		return UploadReply{}, errx.NewProcessing(err, "Error processing your resume")
	}

	profile, err := m.contacts.Extract(ctx, text)
	if err != nil {
		// Structured extraction is best effort: absent fields, not a failure.
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("contact extraction failed, continuing without fields")
		profile = Profile{}
	}

	var reply UploadReply
	err = m.store.Update(sessionID, func(s *Session) error {
		s.ResumeText = text
		s.Name = profile.Name
		s.Contact = ContactInfo{
			Email:    profile.Email,
			Phone:    profile.Phone,
			LinkedIn: profile.LinkedIn,
		}
		s.FollowUps = 0

		prompt := uploadAck(s.Name)
		if s.Contact.Complete() {
			s.State = StateAskLinkedIn
			prompt += linkedInBody
		} else {
			s.State = StateAskContactInfo
			prompt += contactInfoBody(s.Contact)
		}

		m.mirror(s.ID, map[string]any{
			"record_id":    s.RecordID,
			"user_id":      s.ID,
			"resume_text":  s.ResumeText,
			"linkedin_url": s.Contact.LinkedIn,
			"created_at":   s.CreatedAt.Format(time.RFC3339),
		})

		reply = UploadReply{
			Name:       s.Name,
			Text:       prompt,
			Completion: s.State.Completion(),
		}
		return nil
	})
	if err != nil {
		return UploadReply{}, err
	}
	return reply, nil
}
