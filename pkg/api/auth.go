package api

// RequestOTPRequest представляет запрос на отправку одноразового кода в WhatsApp
type RequestOTPRequest struct {
	PhoneWhatsapp string `json:"phone_whatsapp" validate:"required,e164"` // номер в канонической форме
}

// RequestOTPResponse представляет ответ на запрос кода
type RequestOTPResponse struct {
	Message   string `json:"message"`
	ExpiresIn int64  `json:"expires_in"` // время жизни кода в секундах
	// CodeDebug заполняется только сервером в режиме отладки
	CodeDebug string `json:"code_debug,omitempty"`
}

// VerifyOTPRequest представляет запрос на проверку одноразового кода
type VerifyOTPRequest struct {
	PhoneWhatsapp string `json:"phone_whatsapp" validate:"required,e164"`
	Code          string `json:"code" validate:"required,len=6,numeric"`
}

// VerifyOTPResponse представляет ответ с токенами и метаданными сессии
type VerifyOTPResponse struct {
	Access       string `json:"access"`        // JWT access token
	Refresh      string `json:"refresh"`       // refresh token
	Role         string `json:"role"`          // vendor | superadmin
	BusinessSlug string `json:"business_slug"` // slug бутика пользователя
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RefreshResponse представляет ответ с новым access token.
// Refresh заполнен только если сервер ротирует refresh token.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// LogoutRequest представляет запрос на отзыв refresh token
type LogoutRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
