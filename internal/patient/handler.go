package patient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/careops/hospital-services/internal/api"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PatientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/patients/{id}", h.GetPatient)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "could not parse JSON")
		return
	}

	p, err := h.svc.Register(r.Context(), req.Name, req.Age, req.Password)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, RegisterResponse{
		Message: "Registered successfully",
		ID:      p.ID,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "could not parse JSON")
		return
	}

	p, err := h.svc.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			api.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, LoginResponse{ID: p.ID, Name: p.Name})
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	p, err := h.svc.GetPatient(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			api.WriteError(w, http.StatusNotFound, "Patient not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, PatientResponse{ID: p.ID, Name: p.Name, Age: p.Age})
}
