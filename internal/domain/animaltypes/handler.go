package animaltypes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/animal-types", listAnimalTypesHandler(svc))
}

// RegisterAdminRoutes se monta bajo /admin (el router ya exige rol admin).
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Route("/animal-types", func(ar chi.Router) {
		ar.Post("/", createAnimalTypeHandler(svc))
		ar.Patch("/{animalTypeID}", updateAnimalTypeHandler(svc))
	})
}

// animalTypeItem es la forma pública: solo id + nombre.
type animalTypeItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type animalTypeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createAnimalTypeRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"` // opcional
}

type updateAnimalTypeRequest struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	IsActive *bool   `json:"is_active"`
}

// listAnimalTypesHandler godoc
// @Summary Listar tipos de animales
// @Description Devuelve las categorías de animales activas que atiende la clínica.
// @Tags vetclinic
// @Produce json
// @Success 200 {array} animalTypeItem
// @Failure 500 {string} string "internal error"
// @Router /animal-types/ [get]
func listAnimalTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListActive(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalTypeItem, 0, len(items))
		for _, a := range items {
			out = append(out, animalTypeItem{ID: a.ID, Name: a.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createAnimalTypeHandler godoc
// @Summary Crear tipo de animal (admin)
// @Description Crea una categoría. Si no se envía slug, se deriva del nombre.
// @Tags admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <ADMIN_API_KEY>"
// @Param payload body createAnimalTypeRequest true "Nombre y slug opcional"
// @Success 201 {object} animalTypeResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "duplicate name or slug"
// @Router /admin/animal-types [post]
func createAnimalTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{Name: req.Name, Slug: req.Slug})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalTypeResponse(a))
	}
}

// updateAnimalTypeHandler godoc
// @Summary Actualizar tipo de animal (admin)
// @Description Renombra, cambia slug o activa/desactiva una categoría.
// @Tags admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <ADMIN_API_KEY>"
// @Param animalTypeID path int true "ID del tipo de animal"
// @Param payload body updateAnimalTypeRequest true "Campos a cambiar"
// @Success 200 {object} animalTypeResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "animal type not found"
// @Failure 409 {string} string "duplicate name or slug"
// @Router /admin/animal-types/{animalTypeID} [patch]
func updateAnimalTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "animalTypeID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid animal type id", http.StatusBadRequest)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAnimalTypeRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), id, UpdateInput{
			Name:     req.Name,
			Slug:     req.Slug,
			IsActive: req.IsActive,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalTypeResponse(a))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAnimalTypeResponse(a AnimalType) animalTypeResponse {
	return animalTypeResponse{
		ID:        a.ID,
		Name:      a.Name,
		Slug:      a.Slug,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
