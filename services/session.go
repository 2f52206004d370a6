package services

import (
	"fmt"
	"time"

	"ak_dashboard/config"

	"github.com/golang-jwt/jwt/v5"
)

// Session — сеанс преподавателя: токен удалённого API плюс данные входа.
// Создаётся при логине, передаётся явно во все сервисы, работающие с
// платформой, и умирает вместе с кукой.
type Session struct {
	AccessToken string
	Email       string
	IsLead      bool
}

// GenerateSessionToken упаковывает сессию в подписанный JWT для куки.
func GenerateSessionToken(s *Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"accessToken": s.AccessToken,
		"email":       s.Email,
		"isLead":      s.IsLead,
		"exp":         time.Now().Add(12 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(config.JWTSecret))
}

// ParseSessionToken проверяет подпись куки и восстанавливает сессию.
func ParseSessionToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неизвестный метод подписи")
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("недействительный токен сессии")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("недействительный токен сессии")
	}
	accessToken, ok := claims["accessToken"].(string)
	if !ok || accessToken == "" {
		return nil, fmt.Errorf("токен сессии не содержит accessToken")
	}
	email, _ := claims["email"].(string)
	isLead, _ := claims["isLead"].(bool)

	return &Session{AccessToken: accessToken, Email: email, IsLead: isLead}, nil
}
