package main

import (
	"log"

	"ak_dashboard/config"
	"ak_dashboard/controllers"
	"ak_dashboard/routes"
	"ak_dashboard/services"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

func main() {
	config.LoadEnv()

	// HTML-шаблонизатор: директория и расширение шаблонов
	engine := html.New("./views", ".html")
	engine.AddFunc("add1", func(i int) int { return i + 1 })

	app := fiber.New(fiber.Config{
		Views:       engine,
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Клиент улучшения текстов — после LoadEnv, чтобы увидеть конфигурацию
	controllers.AI = services.NewAIClient()

	// Статические файлы
	app.Static("/style", "./views/style")
	app.Static("/scripts", "./views/scripts")

	// Регистрируем маршруты
	routes.RegisterPagesRoutes(app)
	routes.RegisterDashboardRoutes(app)
	routes.RegisterCharacteristicsRoutes(app)

	// Запускаем сервер
	log.Fatal(app.Listen(config.ServerPort))
}
