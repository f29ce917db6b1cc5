package middleware

import (
	"context"
	"encoding/json"
	"time"

	"kintai/internal/models"

	"github.com/gofiber/fiber/v2"
	fiberUtils "github.com/gofiber/fiber/v2/utils"
	"gorm.io/datatypes"
)

// AccessLog records each handled request after the fact. Writes are
// best-effort and detached from the request lifecycle.
func (m *Middleware) AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Method and Path point into fasthttp's reused request buffers and
		// are only valid inside the handler; copy before detaching.
		entry := &models.AccessLog{
			Method: fiberUtils.CopyString(c.Method()),
			Path:   fiberUtils.CopyString(c.Path()),
			Status: c.Response().StatusCode(),
		}

		if user := GetUser(c); user != nil {
			userID := user.ID
			entry.UserID = &userID
		}

		details := map[string]string{
			"ip":        c.IP(),
			"userAgent": c.Get("User-Agent"),
			"traceId":   GetTraceID(c),
		}
		if raw, marshalErr := json.Marshal(details); marshalErr == nil {
			entry.Details = datatypes.JSON(raw)
		}

		go m.writeAccessLog(entry)

		return err
	}
}

func (m *Middleware) writeAccessLog(entry *models.AccessLog) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.accessLogRepo.Create(ctx, entry); err != nil {
		m.log.Function("writeAccessLog").
			Warn("failed to write access log", "path", entry.Path, "error", err)
	}
}
