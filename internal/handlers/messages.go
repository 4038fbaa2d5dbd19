package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/services"
)

// MessageHandler exposes the contact form, the admin inbox, auto-reply
// templates and message settings.
type MessageHandler struct {
	messaging *services.MessagingService
	log       logrus.FieldLogger
}

func NewMessageHandler(messaging *services.MessagingService, log logrus.FieldLogger) *MessageHandler {
	return &MessageHandler{messaging: messaging, log: log}
}

// Submit handles the public contact form.
func (h *MessageHandler) Submit(c *fiber.Ctx) error {
	var req services.SubmitMessageInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	conv, msg, err := h.messaging.SubmitMessage(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        msg,
		"conversationId": conv.ID,
	})
}

func (h *MessageHandler) List(c *fiber.Ctx) error {
	conversations, err := h.messaging.ListConversations(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(conversations)
}

func (h *MessageHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.messaging.Stats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(stats)
}

// Get opens a conversation: the response shows it as it was, and its
// messages are marked read afterwards.
func (h *MessageHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	conv, err := h.messaging.OpenConversation(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(conv)
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	marked, err := h.messaging.MarkRead(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"marked":  marked,
	})
}

func (h *MessageHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req services.ConversationPatch
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	conv, err := h.messaging.UpdateConversation(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(conv)
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.messaging.DeleteConversation(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Conversation deleted",
	})
}

func (h *MessageHandler) Reply(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req services.ReplyInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	reply, err := h.messaging.Reply(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// Auto-reply templates

func (h *MessageHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.messaging.ListTemplates(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(templates)
}

func (h *MessageHandler) SaveTemplate(c *fiber.Ctx) error {
	var req services.TemplateInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	tpl, created, err := h.messaging.SaveTemplate(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(tpl)
	}
	return c.JSON(tpl)
}

func (h *MessageHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.messaging.DeleteTemplate(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Message settings

func (h *MessageHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.messaging.GetSettings(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(settings)
}

func (h *MessageHandler) UpdateSettings(c *fiber.Ctx) error {
	var req services.SettingsPatch
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	settings, err := h.messaging.UpdateSettings(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(settings)
}
