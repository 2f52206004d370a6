package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	// Конфигурация сервера
	ServerPort = getEnv("SERVER_PORT", ":3000")

	// Удалённый GraphQL API образовательной платформы
	EduAPIURL = getEnv("EDU_API_URL", "https://edu-api.a-k-project.ru/graphql")

	// Сервисы генерации текста: основной и резервный
	AIPrimaryURL  = getEnv("AI_PRIMARY_URL", "https://text.pollinations.ai/")
	AIFallbackURL = getEnv("AI_FALLBACK_URL", "https://chatgpt-42.p.rapidapi.com/aitohuman")
	AIFallbackKey = getEnv("AI_FALLBACK_KEY", "")

	// Секрет для подписи сессионной куки
	JWTSecret = getEnv("JWT_SECRET_KEY", "default_secret")

	// Путь к шрифту с кириллицей для PDF-экспорта
	PDFFontPath = getEnv("PDF_FONT_PATH", "./fonts/DejaVuSans.ttf")
)

// LoadEnv подхватывает .env и перечитывает переменные.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("Конфигурация загружена из .env")
	}
	ServerPort = getEnv("SERVER_PORT", ServerPort)
	EduAPIURL = getEnv("EDU_API_URL", EduAPIURL)
	AIPrimaryURL = getEnv("AI_PRIMARY_URL", AIPrimaryURL)
	AIFallbackURL = getEnv("AI_FALLBACK_URL", AIFallbackURL)
	AIFallbackKey = getEnv("AI_FALLBACK_KEY", AIFallbackKey)
	JWTSecret = getEnv("JWT_SECRET_KEY", JWTSecret)
	PDFFontPath = getEnv("PDF_FONT_PATH", PDFFontPath)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
