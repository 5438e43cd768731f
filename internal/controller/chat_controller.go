package controller

import (
	"os"
	"path/filepath"
	"strings"

	"pdf-chat-be/internal/constant"
	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/pkg/serverutils"
	"pdf-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	service   service.IChatService
	uploadDir string
	logger    logger.ILogger
}

func NewChatController(service service.IChatService, uploadDir string, logger logger.ILogger) IChatController {
	return &chatController{
		service:   service,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/upload", c.Upload)
	h.Post("/query", c.Query)
	h.Get("/history", c.History)
}

func (c *chatController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "PDF file is required")
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), constant.PDFExtension) {
		return fiber.NewError(fiber.StatusBadRequest, "Only PDF files are supported")
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return err
	}

	// unique name so concurrent uploads of the same file never collide
	filename := filepath.Base(fileHeader.Filename)
	filePath := filepath.Join(c.uploadDir, uuid.NewString()+"_"+filename)
	if err := ctx.SaveFile(fileHeader, filePath); err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(filePath); err != nil {
			c.logger.Warn("HTTP", "Failed to remove uploaded file", map[string]interface{}{
				"path":  filePath,
				"error": err.Error(),
			})
		}
	}()

	res, err := c.service.Upload(ctx.UserContext(), filePath, ctx.FormValue("session_id"), filename)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *chatController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	reply, err := c.service.Query(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query document", dto.QueryResponse{Message: reply}))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	var req dto.HistoryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.History(ctx.UserContext(), req.SessionId, req.DocId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
