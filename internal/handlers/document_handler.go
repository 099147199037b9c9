package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resumai/internal/models"
	"alfredoptarigan/resumai/internal/services"
)

type DocumentHandler struct {
	resumes      services.ResumeService
	coverLetters services.CoverLetterService
	portfolios   services.PortfolioService
	exporter     services.PDFExporter
}

func NewDocumentHandler(
	resumes services.ResumeService,
	coverLetters services.CoverLetterService,
	portfolios services.PortfolioService,
	exporter services.PDFExporter,
) *DocumentHandler {
	return &DocumentHandler{
		resumes:      resumes,
		coverLetters: coverLetters,
		portfolios:   portfolios,
		exporter:     exporter,
	}
}

// HandleTemplates handles GET /templates
func (h *DocumentHandler) HandleTemplates(c *fiber.Ctx) error {
	templates := make([]models.TemplateInfo, 0, len(models.Templates))
	for _, t := range models.Templates {
		templates = append(templates, models.TemplateInfo{ID: t, Label: t.Label()})
	}

	return c.JSON(fiber.Map{"templates": templates})
}

// HandleResume handles POST /sessions/:id/resume
func (h *DocumentHandler) HandleResume(c *fiber.Ctx) error {
	var req models.ResumeRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return err
	}

	doc, err := h.resumes.Generate(c.UserContext(), sessionFrom(c), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return h.sendDocument(c, doc)
}

// HandleCoverLetter handles POST /sessions/:id/cover-letter
func (h *DocumentHandler) HandleCoverLetter(c *fiber.Ctx) error {
	var req models.CoverLetterRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return err
	}

	doc, err := h.coverLetters.Generate(c.UserContext(), sessionFrom(c), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return h.sendDocument(c, doc)
}

// HandlePortfolio handles POST /sessions/:id/portfolio
func (h *DocumentHandler) HandlePortfolio(c *fiber.Ctx) error {
	var req models.PortfolioRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return err
	}

	result, err := h.portfolios.Generate(c.UserContext(), sessionFrom(c), req)
	if err != nil {
		return errorResponse(c, err)
	}

	if c.Query("format") == "html" {
		c.Attachment(result.Filename)
		c.Type("html", "utf-8")
		return c.SendString(result.HTML)
	}

	return c.JSON(result)
}

// sendDocument answers with JSON, or with the PDF itself when ?format=pdf.
func (h *DocumentHandler) sendDocument(c *fiber.Ctx, doc *models.Document) error {
	if c.Query("format") != "pdf" {
		return c.JSON(models.DocumentResponse{Document: doc})
	}

	pdf, err := h.exporter.Export(doc)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

func parseOptionalBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid request payload: %v", err))
	}
	return nil
}
