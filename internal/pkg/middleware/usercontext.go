package middleware

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/CartFox/app/models"
	"github.com/ManuelReschke/CartFox/app/repository"
	"github.com/ManuelReschke/CartFox/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the upstream-authenticated identity into a
// full user context for every request. Authentication itself happens in front
// of this service; we only honor the X-User-ID header it sets and load the
// user row behind it.
func UserContextMiddleware(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Get("X-User-ID"))
	if raw == "" {
		c.Locals(usercontext.ContextKey, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.Locals(usercontext.ContextKey, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(uint(id))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("user context lookup failed: %v", err)
		}
		c.Locals(usercontext.ContextKey, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	c.Locals(usercontext.ContextKey, usercontext.UserContext{
		UserID:     user.ID,
		Username:   user.Name,
		Email:      user.Email,
		IsLoggedIn: user.Status == models.STATUS_ACTIVE,
		IsAdmin:    user.IsAdmin(),
	})
	return c.Next()
}
