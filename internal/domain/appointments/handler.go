package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const msgBooked = "Запись на прием произошла успешно"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/free-slots", freeSlotsHandler(svc))
	r.Post("/make-an-appointment", makeAppointmentHandler(svc))
}

// RegisterAdminRoutes se monta bajo /admin (el router ya exige rol admin).
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Post("/", adminBookHandler(svc))
		ar.Post("/{appointmentID}/deactivate", deactivateAppointmentHandler(svc))
	})
}

type bookRequest struct {
	Client          int64  `json:"client" example:"1"`
	AppointmentDate string `json:"appointment_date" example:"25.03.2030 10:00"`
	AnimalType      int64  `json:"animal_type" example:"1"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

type appointmentResponse struct {
	ID              string    `json:"id"`
	Client          int64     `json:"client"`
	AnimalType      int64     `json:"animal_type"`
	AppointmentDate string    `json:"appointment_date"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// freeSlotsHandler godoc
// @Summary Slots libres
// @Description Slots de 30 minutos entre 09:00 y 18:00 para hoy y los próximos 6 días, sin los ya reservados ni los pasados.
// @Tags vetclinic
// @Produce json
// @Success 200 {array} string "dd.mm.yyyy HH:MM"
// @Failure 500 {string} string "internal error"
// @Router /free-slots/ [get]
func freeSlotsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := svc.FreeSlots(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]string, 0, len(slots))
		for _, t := range slots {
			out = append(out, FormatSlot(t, svc.Location()))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// makeAppointmentHandler godoc
// @Summary Reservar turno
// @Description Reserva un slot para un cliente y un tipo de animal.
// @Tags vetclinic
// @Accept json
// @Produce json
// @Param payload body bookRequest true "Cliente, fecha (dd.mm.yyyy HH:MM) y tipo de animal"
// @Success 201 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {string} string "internal error"
// @Router /make-an-appointment/ [post]
func makeAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeBookRequest(w, r)
		if !ok {
			return
		}

		if _, err := svc.Book(r.Context(), in); err != nil {
			writeBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, messageResponse{Message: msgBooked})
	}
}

// adminBookHandler godoc
// @Summary Reservar turno (admin)
// @Description Igual que make-an-appointment, con las mismas validaciones; devuelve la cita creada.
// @Tags admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <ADMIN_API_KEY>"
// @Param payload body bookRequest true "Cliente, fecha y tipo de animal"
// @Success 201 {object} appointmentResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /admin/appointments [post]
func adminBookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeBookRequest(w, r)
		if !ok {
			return
		}

		a, err := svc.Book(r.Context(), in)
		if err != nil {
			writeBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(a, svc.Location()))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas (admin)
// @Description Citas con fecha en [from, to). Sin parámetros: la ventana de 7 días de slots.
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer <ADMIN_API_KEY>"
// @Param from query string false "dd.mm.yyyy HH:MM"
// @Param to query string false "dd.mm.yyyy HH:MM"
// @Success 200 {array} appointmentResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /admin/appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc := svc.Location()
		from, to := Window(svc.now(), loc)

		if v := r.URL.Query().Get("from"); v != "" {
			t, err := ParseSlot(v, loc)
			if err != nil {
				writeBookingError(w, err)
				return
			}
			from = t
		}
		if v := r.URL.Query().Get("to"); v != "" {
			t, err := ParseSlot(v, loc)
			if err != nil {
				writeBookingError(w, err)
				return
			}
			to = t
		}

		items, err := svc.List(r.Context(), from, to)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a, loc))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// deactivateAppointmentHandler godoc
// @Summary Desactivar cita (admin)
// @Description Marca la cita como inactiva y libera el slot.
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer <ADMIN_API_KEY>"
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "appointment not found"
// @Router /admin/appointments/{appointmentID}/deactivate [post]
func deactivateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Deactivate(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a, svc.Location()))
	}
}

func decodeBookRequest(w http.ResponseWriter, r *http.Request) (BookInput, bool) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    CodeValidationError,
			Message: "Некорректный JSON",
		})
		return BookInput{}, false
	}
	return BookInput{
		ClientID:        req.Client,
		AppointmentDate: req.AppointmentDate,
		AnimalTypeID:    req.AnimalType,
	}, true
}

// writeBookingError: errores de la taxonomía => 400 {code, message}; el resto 500.
func writeBookingError(w http.ResponseWriter, err error) {
	code, msg, ok := Describe(err)
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := errorResponse{Code: code, Message: msg}
	var ve *ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func toAppointmentResponse(a Appointment, loc *time.Location) appointmentResponse {
	return appointmentResponse{
		ID:              a.ID,
		Client:          a.ClientID,
		AnimalType:      a.AnimalTypeID,
		AppointmentDate: FormatSlot(a.Date, loc),
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
