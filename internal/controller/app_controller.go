package controller

import (
	"context"

	"pdf-chat-be/internal/constant"
	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/pkg/serverutils"
	"pdf-chat-be/pkg/database"

	"github.com/gofiber/fiber/v2"
)

// DatabasePinger performs one round trip to the database.
type DatabasePinger func(ctx context.Context) database.WakeUpResult

type IAppController interface {
	RegisterRoutes(r fiber.Router)
	Info(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type appController struct {
	pinger DatabasePinger
}

// NewAppController builds the info and health endpoints. A nil pinger means no database is configured.
func NewAppController(pinger DatabasePinger) IAppController {
	return &appController{pinger: pinger}
}

func (c *appController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Info)
	r.Get("/health", c.Health)
}

func (c *appController) Info(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.AppInfo{
		Name:        constant.AppName,
		Version:     constant.AppVersion,
		Description: constant.AppDescription,
	})
}

// Health also wakes up a paused database.
func (c *appController) Health(ctx *fiber.Ctx) error {
	if c.pinger == nil {
		return ctx.JSON(serverutils.SuccessResponse("Service is healthy", dto.HealthResponse{
			Status:   "ok",
			Database: "not configured",
		}))
	}

	result := c.pinger(ctx.UserContext())
	res := dto.HealthResponse{
		Status:    "ok",
		Database:  "up",
		Message:   result.Message,
		LatencyMs: result.Latency.Milliseconds(),
	}
	if !result.Ok {
		res.Status = "degraded"
		res.Database = "down"
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.BaseResponse[dto.HealthResponse]{
			Success: false,
			Code:    fiber.StatusServiceUnavailable,
			Message: "Database is unreachable",
			Data:    res,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Service is healthy", res))
}
