package api

// Response представляет единый конверт ответа API.
// Каждый ответ содержит success; ошибки дополнительно несут msg,
// ошибки валидации — список errors по полям.
type Response struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Msg     string       `json:"msg,omitempty"`
}

// FieldError представляет ошибку валидации конкретного поля запроса
type FieldError struct {
	Field   string `json:"field"`   // имя поля
	Message string `json:"message"` // описание ошибки
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	FirstName string `json:"firstName"`      // имя, обязательное
	LastName  string `json:"lastName"`       // фамилия, обязательное
	Email     string `json:"email"`          // уникальный email
	Password  string `json:"password"`       // минимум 8 символов
	Role      string `json:"role,omitempty"` // "user" | "admin", по умолчанию "user"
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionData представляет тело успешного ответа с выданной сессией.
// Токен дублируется в теле ответа в дополнение к HttpOnly cookie.
type SessionData struct {
	Token string `json:"token"` // подписанный JWT
}

// UpdateProfileRequest представляет частичное обновление профиля.
// Пустое поле означает "не менять".
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// UpdatePasswordRequest представляет смену пароля аутентифицированным пользователем
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ForgotPasswordRequest представляет запрос reset-токена по email
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetTokenData представляет тело ответа forgot password.
// Сырой токен возвращается клиенту ровно один раз, в БД хранится только его хеш.
type ResetTokenData struct {
	ResetToken string `json:"resetToken"`
}

// ResetPasswordRequest представляет установку нового пароля по reset-токену
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
