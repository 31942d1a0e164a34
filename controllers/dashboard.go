package controllers

import (
	"github.com/gofiber/fiber/v2"

	"classtrack_go/middleware"
	"classtrack_go/services"
	"classtrack_go/utils"
)

type DashboardController struct {
	Service *services.DashboardService
}

// GetStats returns the caller's role-scoped dashboard numbers.
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, utils.ErrUnauthenticated)
	}

	stats, err := dc.Service.Stats(c.UserContext(), user)
	if err != nil {
		return utils.JSONError(c, err)
	}
	return c.JSON(stats)
}
