package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/services"
)

type UploadHandler struct {
	uploads *services.UploadService
	log     logrus.FieldLogger
}

func NewUploadHandler(uploads *services.UploadService, log logrus.FieldLogger) *UploadHandler {
	return &UploadHandler{uploads: uploads, log: log}
}

// Upload accepts a multipart form with a "file" part and an optional "type"
// category.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file provided")
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer file.Close()

	result, err := h.uploads.Upload(c.UserContext(), services.UploadInput{
		Category:    c.FormValue("type"),
		FileName:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(result)
}
