package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avdeyev/authgate/pkg/api"
)

// sendJSON отправляет JSON ответ
func (h *AuthHandler) sendJSON(w http.ResponseWriter, resp api.Response, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendData отправляет успешный ответ с данными
func (h *AuthHandler) sendData(w http.ResponseWriter, data any, statusCode int) {
	h.sendJSON(w, api.Response{Success: true, Data: data}, statusCode)
}

// sendError отправляет ответ с ошибкой.
// Единственная точка преобразования вида ошибки в конверт ответа.
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.Response{Success: false, Msg: message}, statusCode)
}

// sendValidationErrors отправляет 400 со списком ошибок по полям
func (h *AuthHandler) sendValidationErrors(w http.ResponseWriter, errs []api.FieldError) {
	h.sendJSON(w, api.Response{Success: false, Errors: errs}, http.StatusBadRequest)
}
