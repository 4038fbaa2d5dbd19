package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/services"
)

// ContentHandler serves the profile, about and contact sections.
type ContentHandler struct {
	content *services.ContentService
	log     logrus.FieldLogger
}

func NewContentHandler(content *services.ContentService, log logrus.FieldLogger) *ContentHandler {
	return &ContentHandler{content: content, log: log}
}

func (h *ContentHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.content.GetProfile(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(profile)
}

func (h *ContentHandler) UpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	profile, err := h.content.SaveProfile(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(profile)
}

func (h *ContentHandler) AddProfileImage(c *fiber.Ctx) error {
	var req services.ProfileImageInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	profile, err := h.content.AddProfileImage(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(profile)
}

func (h *ContentHandler) GetAbout(c *fiber.Ctx) error {
	about, err := h.content.GetAbout(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(about)
}

func (h *ContentHandler) UpdateAbout(c *fiber.Ctx) error {
	var req services.AboutInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	about, err := h.content.SaveAbout(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(about)
}

func (h *ContentHandler) GetContact(c *fiber.Ctx) error {
	contact, err := h.content.GetContact(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(contact)
}

func (h *ContentHandler) UpdateContact(c *fiber.Ctx) error {
	var req services.ContactInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	contact, err := h.content.SaveContact(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(contact)
}
