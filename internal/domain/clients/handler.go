package clients

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/register", registerHandler(svc))
	r.Get("/clients/{clientID}", getClientHandler(svc))
}

// chatID acepta el id de Telegram como número o como string JSON.
type chatID string

func (c *chatID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = chatID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = chatID(n.String())
	return nil
}

type registerRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	TelegramChatID chatID `json:"telegram_chat_id" swaggertype:"string"`
	Login          string `json:"login"`
}

type clientResponse struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          string  `json:"phone"`
	TelegramChatID *string `json:"telegram_chat_id"`
}

// registerHandler godoc
// @Summary Registrar cliente
// @Description Crea un cliente. Si no se envía login se genera un token de 10 caracteres.
// @Tags clients
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos del cliente"
// @Success 201 {object} clientResponse
// @Failure 400 {object} map[string][]string "errores por campo"
// @Failure 500 {string} string "internal error"
// @Router /register/ [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string][]string{
				"non_field_errors": {"Некорректный JSON."},
			})
			return
		}

		c, err := svc.Register(r.Context(), RegisterInput{
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Phone:          req.Phone,
			TelegramChatID: string(req.TelegramChatID),
			Login:          req.Login,
		})
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				writeJSON(w, http.StatusBadRequest, ve.Fields)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toClientResponse(c))
	}
}

// getClientHandler godoc
// @Summary Obtener cliente
// @Tags clients
// @Produce json
// @Param clientID path int true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 400 {string} string "invalid client id"
// @Failure 404 {string} string "client not found"
// @Router /clients/{clientID} [get]
func getClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "clientID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid client id", http.StatusBadRequest)
			return
		}

		c, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toClientResponse(c))
	}
}

func toClientResponse(c Client) clientResponse {
	out := clientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
	}
	if c.TelegramChatID != "" {
		id := c.TelegramChatID
		out.TelegramChatID = &id
	}
	return out
}

// writeJSON: cada módulo de dominio tiene el suyo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
