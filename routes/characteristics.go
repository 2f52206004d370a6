package routes

import (
	"ak_dashboard/controllers"
	"ak_dashboard/middlewares"

	"github.com/gofiber/fiber/v2"
)

func RegisterCharacteristicsRoutes(app *fiber.App) {
	// Страница формы характеристики группы
	app.Get("/disciplines/:disciplineId/groups/:groupId/characteristics",
		middlewares.AuthMiddleware, controllers.CharacteristicsPage)

	// API формы характеристики
	api := app.Group("/api", middlewares.AuthMiddleware)
	api.Get("/keywords", controllers.Keywords)
	api.Post("/ai/test", controllers.AITest)

	form := api.Group("/forms/:formId")
	form.Post("/keywords/toggle", controllers.ToggleKeyword)
	form.Post("/comment", controllers.SetComment)
	form.Post("/group-comment", controllers.SetGroupComment)
	form.Post("/enhance", controllers.Enhance)
	form.Post("/enhance-all", controllers.EnhanceAll)
	form.Post("/generate", controllers.GenerateFromKeywords)
	form.Get("/preview", controllers.Preview)
	form.Get("/export", controllers.Export)
	form.Post("/close", controllers.CloseForm)
}
