package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/careops/hospital-services/internal/api"
)

type BookRequest struct {
	PatientID int64  `json:"patient_id"`
	Doctor    string `json:"doctor"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
}

type AppointmentEntry struct {
	Doctor string `json:"doctor"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/appointments/", h.Book)
	r.Get("/appointments/history/{patient_id}", h.History)
	r.Get("/appointments/past/{patient_id}", h.Past)
	r.Get("/appointments/upcoming/{patient_id}", h.Upcoming)
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "could not parse JSON")
		return
	}

	_, err := h.svc.Book(r.Context(), req.PatientID, req.Doctor, req.Date, req.TimeSlot)
	if err != nil {
		handleBookError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Appointment booked successfully"})
}

func handleBookError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPatientValidationFailed):
		api.WriteError(w, http.StatusBadRequest, "Patient validation failed")
	case errors.Is(err, ErrRegistryUnavailable):
		api.WriteError(w, http.StatusBadGateway, "Patient registry unavailable")
	case errors.Is(err, ErrSlotTaken):
		api.WriteError(w, http.StatusBadRequest, "This slot is already booked!")
	default:
		api.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	h.listAppointments(w, r, h.svc.History)
}

func (h *Handler) Past(w http.ResponseWriter, r *http.Request) {
	h.listAppointments(w, r, h.svc.Past)
}

func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	h.listAppointments(w, r, h.svc.Upcoming)
}

func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, patientID int64) ([]Appointment, error)) {
	patientID, err := strconv.ParseInt(chi.URLParam(r, "patient_id"), 10, 64)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "patient_id must be an integer")
		return
	}

	appts, err := list(r.Context(), patientID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]AppointmentEntry, 0, len(appts))
	for _, a := range appts {
		resp = append(resp, AppointmentEntry{
			Doctor: a.Doctor,
			Date:   a.Date,
			Time:   a.TimeSlot,
		})
	}

	api.WriteJSON(w, http.StatusOK, resp)
}
