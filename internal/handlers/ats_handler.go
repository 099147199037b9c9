package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resumai/internal/models"
	"alfredoptarigan/resumai/internal/repositories"
	"alfredoptarigan/resumai/internal/services"
)

type ATSHandler struct {
	ats       services.ATSService
	uploads   services.UploadReader
	extractor services.TextExtractor
	sessions  repositories.SessionRepository
}

func NewATSHandler(
	ats services.ATSService,
	uploads services.UploadReader,
	extractor services.TextExtractor,
	sessions repositories.SessionRepository,
) *ATSHandler {
	return &ATSHandler{
		ats:       ats,
		uploads:   uploads,
		extractor: extractor,
		sessions:  sessions,
	}
}

// HandleScan handles POST /sessions/:id/ats/scan. The resume comes either as
// a multipart "resume" file or as resume_text, next to job_description.
func (h *ATSHandler) HandleScan(c *fiber.Ctx) error {
	var req models.ATSScanRequest

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		text, err := h.readUpload(c)
		if err != nil {
			return errorResponse(c, err)
		}
		req.ResumeText = text
		req.JobDescription = c.FormValue("job_description")
	} else if err := parseOptionalBody(c, &req); err != nil {
		return err
	}

	result := h.ats.Scan(c.UserContext(), req.ResumeText, req.JobDescription)

	if strings.TrimSpace(req.ResumeText) != "" && strings.TrimSpace(req.JobDescription) != "" {
		session := sessionFrom(c)
		details := fmt.Sprintf("Score: %s%%", strconv.FormatFloat(result.Score, 'f', -1, 64))
		services.RecordHistory(h.sessions, session.ID, models.ActionATSScan, details)
	}

	return c.JSON(result)
}

// readUpload returns the text of the "resume" file, or resume_text when no
// file was sent.
func (h *ATSHandler) readUpload(c *fiber.Ctx) (string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	files := form.File["resume"]
	if len(files) == 0 {
		return c.FormValue("resume_text"), nil
	}

	file := files[0]
	data, err := h.uploads.ReadFile(file)
	if err != nil {
		return "", err
	}

	return h.extractor.ExtractText(file.Filename, file.Header.Get(fiber.HeaderContentType), data)
}
