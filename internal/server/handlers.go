package server

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	errx "github.com/kaleem-core/server/internal/core/error"
)

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type contactRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, errx.NewValidation("No data provided"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.requestTimeout())
	defer cancel()

	reply, err := s.machine.Answer(ctx, req.UserID, req.Message)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"response":              reply.Text,
		"completion_percentage": reply.Completion,
	})
}

// handleSessionRecord returns the durable record and chat log for a session,
// read from the mirror rather than the live in-memory copy.
func (s *Server) handleSessionRecord(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return writeError(c, errx.NewValidation("Missing required field: user_id"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.requestTimeout())
	defer cancel()

	record, err := s.records.LoadRecord(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	if len(record) == 0 {
		return writeError(c, errx.NewNotFound(errx.SessionNotFoundMessage))
	}

	history, err := s.records.LoadHistory(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"record":  record,
		"history": history,
	})
}

func (s *Server) handleUploadResume(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, errx.NewValidation("No file part"))
	}
	userID := c.FormValue("user_id")

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, errx.NewProcessing(err, "Error processing your resume"))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, errx.NewProcessing(err, "Error processing your resume"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.requestTimeout())
	defer cancel()

	reply, err := s.machine.IngestDocument(ctx, userID, fileHeader.Filename, data)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":               true,
		"name":                  reply.Name,
		"response":              reply.Text,
		"completion_percentage": reply.Completion,
	})
}

func (s *Server) handleSubmitContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, errx.NewValidation("No data provided"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.requestTimeout())
	defer cancel()

	reply, err := s.machine.SubmitContact(ctx, req.UserID, req.Email, req.Phone)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"response":              reply.Text,
		"completion_percentage": reply.Completion,
	})
}
