package routes

import (
	"ak_dashboard/controllers"
	"ak_dashboard/middlewares"

	"github.com/gofiber/fiber/v2"
)

func RegisterDashboardRoutes(app *fiber.App) {
	// Страницы преподавателя, требующие авторизации
	app.Get("/dashboard", middlewares.AuthMiddleware, controllers.Dashboard)
	app.Get("/disciplines", middlewares.AuthMiddleware, controllers.Disciplines)
	app.Get("/disciplines/:disciplineId/groups", middlewares.AuthMiddleware, controllers.Groups)
	app.Get("/disciplines/:disciplineId/groups/:groupId/students", middlewares.AuthMiddleware, controllers.GroupStudents)
}
