package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/database"
	"github.com/hackagra/mindverse-api/utils/response"
)

// HandleCheckHealth reports API and database health
func HandleCheckHealth(c *fiber.Ctx, store *database.GORMStore) error {
	status := "ok"
	dbStatus := "ok"

	if store != nil {
		if err := store.HealthCheck(); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
		}
	}

	return response.Success(c, fiber.Map{
		"status":   status,
		"database": dbStatus,
	})
}
