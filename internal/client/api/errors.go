package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iudanet/niplan/internal/client/transport"
)

// ErrInvalidPhone номер не похож на WhatsApp номер даже после нормализации
var ErrInvalidPhone = errors.New("invalid phone number")

// StatusError is returned for every non-2xx API response.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Is позволяет проверять 401 через errors.Is(err, transport.ErrAuthExpired)
func (e *StatusError) Is(target error) bool {
	return target == transport.ErrAuthExpired && e.StatusCode == http.StatusUnauthorized
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
