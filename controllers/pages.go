package controllers

import (
	"errors"
	"log"
	"time"

	"ak_dashboard/middlewares"
	"ak_dashboard/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// LoginPage возвращает страницу входа (views/index.html).
func LoginPage(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{})
}

// Login принимает форму входа, проверяет учётные данные на платформе
// и устанавливает куку сессии.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	var input LoginInput

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalidFormat"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "emptyFields"})
	}

	session, err := services.SignIn(input.Email, input.Password)
	if err != nil {
		log.Println("[login] отказ платформы:", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Неверный email или пароль"})
	}

	tokenString, err := services.GenerateSessionToken(session)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "tokenGeneration"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    tokenString,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(12 * time.Hour),
	})

	return c.JSON(fiber.Map{"success": true, "link": "dashboard"})
}

// Logout очищает куку сессии и перенаправляет на страницу входа.
func Logout(c *fiber.Ctx) error {
	middlewares.ClearSessionCookie(c)
	return c.Redirect("/")
}

// platformError переводит ошибку платформы в HTTP-ответ: протухшая
// сессия гасит куку и шлёт на логин, остальное — 502.
func platformError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrUnauthorized) {
		middlewares.ClearSessionCookie(c)
		return c.Redirect("/?error=session_expired")
	}
	log.Println("[platform] ошибка запроса:", err)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Платформа недоступна. Попробуйте позже."})
}
