package routes

import (
	"ak_dashboard/controllers"

	"github.com/gofiber/fiber/v2"
)

func RegisterPagesRoutes(app *fiber.App) {
	// Стартовая страница — логин (index.html)
	app.Get("/", controllers.LoginPage)
	app.Post("/login", controllers.Login)
	app.Get("/logout", controllers.Logout)
}
