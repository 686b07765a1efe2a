package billing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/careops/hospital-services/internal/api"
)

type PayBillRequest struct {
	BillID int64 `json:"bill_id"`
}

type BillResponse struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
	Date   string  `json:"date"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/bills/generate", h.GenerateBill)
	r.Get("/bills/{patient_id}", h.GetBills)
	r.Get("/bills/pending/{patient_id}", h.GetPendingBills)
	r.Get("/bills/paid/{patient_id}", h.GetPaidBills)
	r.Post("/bills/pay", h.PayBill)
}

func (h *Handler) GenerateBill(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.ParseInt(r.URL.Query().Get("patient_id"), 10, 64)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "patient_id must be an integer")
		return
	}

	if _, err := h.svc.GenerateBill(r.Context(), patientID); err != nil {
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Bill generated"})
}

func (h *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	h.listBills(w, r, h.svc.GetBills)
}

func (h *Handler) GetPendingBills(w http.ResponseWriter, r *http.Request) {
	h.listBills(w, r, h.svc.GetPendingBills)
}

func (h *Handler) GetPaidBills(w http.ResponseWriter, r *http.Request) {
	h.listBills(w, r, h.svc.GetPaidBills)
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, patientID int64) ([]Bill, error)) {
	patientID, err := strconv.ParseInt(chi.URLParam(r, "patient_id"), 10, 64)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "patient_id must be an integer")
		return
	}

	bills, err := list(r.Context(), patientID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]BillResponse, 0, len(bills))
	for _, b := range bills {
		resp = append(resp, BillResponse{
			ID:     b.ID,
			Amount: b.Amount,
			Status: string(b.Status),
			Date:   b.DateGenerated,
		})
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	var req PayBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "could not parse JSON")
		return
	}

	if _, err := h.svc.PayBill(r.Context(), req.BillID); err != nil {
		if errors.Is(err, ErrBillNotFound) {
			api.WriteError(w, http.StatusNotFound, "Bill not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Bill paid successfully"})
}
