package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iudanet/niplan/pkg/api"
)

// maxBodySize ограничение тела JSON запроса
const maxBodySize = 1 << 20

var validate = newValidator()

// newValidator возвращает валидатор, который называет поля по json тегам
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errBadRequest ошибка разбора или валидации тела; текст уходит клиенту
type errBadRequest struct {
	msg string
}

func (e *errBadRequest) Error() string { return e.msg }

// decodeJSON читает тело запроса в dst и проверяет теги validate
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return &errBadRequest{msg: "invalid request body"}
	}
	return validateStruct(dst)
}

// validateStruct проверяет dst и переводит ошибки валидатора в одно сообщение
func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed on %s", fe.Field(), fe.Tag()))
	}
	return &errBadRequest{msg: strings.Join(msgs, "; ")}
}

// sendJSON отправляет JSON ответ
func sendJSON(w http.ResponseWriter, logger *slog.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(w http.ResponseWriter, logger *slog.Logger, statusCode int, message string) {
	sendJSON(w, logger, api.ErrorResponse{
		Error:   strings.ToLower(strings.ReplaceAll(http.StatusText(statusCode), " ", "_")),
		Message: message,
	}, statusCode)
}

// sendDecodeError отвечает 400 на ошибку разбора и 500 на все остальное
func sendDecodeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var badRequest *errBadRequest
	if errors.As(err, &badRequest) {
		sendError(w, logger, http.StatusBadRequest, badRequest.msg)
		return
	}
	logger.Error("failed to decode request", slog.Any("error", err))
	sendError(w, logger, http.StatusInternalServerError, "internal server error")
}

func newID() string {
	return uuid.New().String()
}

// slugSuffix короткий случайный суффикс для уникальности slug
func slugSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
}
