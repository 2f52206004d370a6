package middlewares

import (
	"log"

	"ak_dashboard/services"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware проверяет куку session_token и кладёт восстановленную
// сессию в Locals("session"). Невалидная или отсутствующая кука — на логин.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("session_token")
	if tokenString == "" {
		return c.Redirect("/?error=no_token")
	}

	session, err := services.ParseSessionToken(tokenString)
	if err != nil {
		log.Println("[auth] недействительная кука сессии:", err)
		clearSessionCookie(c)
		return c.Redirect("/?error=invalid_token")
	}

	c.Locals("session", session)
	return c.Next()
}

// SessionFromCtx достаёт сессию, положенную AuthMiddleware.
func SessionFromCtx(c *fiber.Ctx) *services.Session {
	session, _ := c.Locals("session").(*services.Session)
	return session
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
	})
}

// ClearSessionCookie гасит куку при выходе.
func ClearSessionCookie(c *fiber.Ctx) {
	clearSessionCookie(c)
}
