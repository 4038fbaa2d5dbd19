package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/services"
)

// PortfolioHandler serves projects, work history and their image galleries.
type PortfolioHandler struct {
	portfolio *services.PortfolioService
	log       logrus.FieldLogger
}

func NewPortfolioHandler(portfolio *services.PortfolioService, log logrus.FieldLogger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, log: log}
}

// Projects

func (h *PortfolioHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.portfolio.ListProjects(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(projects)
}

func (h *PortfolioHandler) CreateProject(c *fiber.Ctx) error {
	var req services.ProjectInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	project, err := h.portfolio.CreateProject(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *PortfolioHandler) UpdateProject(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req services.ProjectInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	project, err := h.portfolio.UpdateProject(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(project)
}

func (h *PortfolioHandler) DeleteProject(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.portfolio.DeleteProject(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project deleted",
	})
}

func (h *PortfolioHandler) ListProjectImages(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	images, err := h.portfolio.ListProjectImages(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(images)
}

func (h *PortfolioHandler) CreateProjectImage(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req services.ImageInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	image, err := h.portfolio.AddProjectImage(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

func (h *PortfolioHandler) DeleteProjectImage(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return invalidID(c)
	}

	if err := h.portfolio.DeleteProjectImage(c.UserContext(), id, imageID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Work history

func (h *PortfolioHandler) ListWork(c *fiber.Ctx) error {
	work, err := h.portfolio.ListWork(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(work)
}

func (h *PortfolioHandler) CreateWork(c *fiber.Ctx) error {
	var req services.WorkInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	work, err := h.portfolio.CreateWork(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(work)
}

func (h *PortfolioHandler) UpdateWork(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req services.WorkInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	work, err := h.portfolio.UpdateWork(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(work)
}

func (h *PortfolioHandler) DeleteWork(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.portfolio.DeleteWork(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Work entry deleted",
	})
}

func (h *PortfolioHandler) ListWorkImages(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	images, err := h.portfolio.ListWorkImages(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(images)
}

func (h *PortfolioHandler) CreateWorkImage(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req services.ImageInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	image, err := h.portfolio.AddWorkImage(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

func (h *PortfolioHandler) DeleteWorkImage(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return invalidID(c)
	}

	if err := h.portfolio.DeleteWorkImage(c.UserContext(), id, imageID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
