package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName имя HttpOnly cookie, в которой клиенту выдается сессия
const CookieName = "token"

// Claims представляет JWT claims сессии
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Config содержит конфигурацию выдачи сессий.
// TokenTTL (срок действия JWT) и CookieTTL (срок жизни cookie)
// настраиваются независимо, проверяются оба.
type Config struct {
	Secret    []byte
	TokenTTL  time.Duration
	CookieTTL time.Duration
	Secure    bool // Secure cookie, включается в production
}

// Session представляет построенную, но еще не отправленную сессию.
// Issue только строит токен и атрибуты cookie; запись ответа
// остается за вызывающим handler-ом.
type Session struct {
	Token  string
	Cookie *http.Cookie
}

// Service выдает и валидирует сессионные токены
type Service struct {
	cfg Config
}

// NewService создает новый сервис сессий
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Issue создает подписанный JWT для пользователя и атрибуты cookie.
// Ничего не пишет в ответ.
func (s *Service) Issue(userID, role string) (*Session, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "authgate",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{
		Token: tokenString,
		Cookie: &http.Cookie{
			Name:     CookieName,
			Value:    tokenString,
			Path:     "/",
			Expires:  now.Add(s.cfg.CookieTTL),
			MaxAge:   int(s.cfg.CookieTTL.Seconds()),
			HttpOnly: true,
			Secure:   s.cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		},
	}, nil
}

// Validate валидирует подписанный токен и возвращает его claims
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.cfg.Secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// ClearCookie возвращает cookie с истекшим сроком действия.
// Отправка такой cookie инструктирует клиента удалить сессию (logout).
func (s *Service) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
