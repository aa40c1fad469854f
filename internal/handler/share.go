package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yeonsu-kang/dutchpay/internal/domain"
	"github.com/yeonsu-kang/dutchpay/internal/service"
	"github.com/yeonsu-kang/dutchpay/pkg/response"
)

// ShareHandler exposes link generation and restoration as API
// endpoints, wrapping the persistence router.
type ShareHandler struct {
	service   *service.ShareService
	validator *validator.Validate
}

func NewShareHandler(service *service.ShareService) *ShareHandler {
	return &ShareHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateLinkRequest is the editable form state as submitted for link
// generation. Amounts arrive as raw input strings; the account number,
// when present, must be digits only, matching the form-side guard.
type CreateLinkRequest struct {
	Title         string                   `json:"title"`
	PeriodFrom    string                   `json:"periodFrom"`
	PeriodTo      string                   `json:"periodTo"`
	Total         string                   `json:"total"`
	Participants  []domain.Participant     `json:"participants"`
	DetailItems   []domain.DetailItemDraft `json:"detailItems"`
	AccountBank   string                   `json:"accountBank"`
	AccountNumber string                   `json:"accountNumber" validate:"omitempty,numeric"`
	BaseURL       string                   `json:"baseUrl" validate:"omitempty,url"`
}

func (req *CreateLinkRequest) snapshot() *domain.Snapshot {
	snap := domain.NewSnapshot()
	snap.Title = req.Title
	snap.PeriodFrom = req.PeriodFrom
	snap.PeriodTo = req.PeriodTo
	snap.Total = req.Total
	snap.Participants = append(snap.Participants, req.Participants...)
	snap.DetailItems = append(snap.DetailItems, req.DetailItems...)
	snap.AccountBank = req.AccountBank
	snap.AccountNumber = req.AccountNumber
	return snap
}

// CreateLink handles POST /api/share
func (h *ShareHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	link, err := h.service.CreateLink(r.Context(), req.snapshot(), req.BaseURL)
	if err != nil {
		response.InternalServerError(w, "Failed to create link", err)
		return
	}

	response.Success(w, link)
}

// Resolve handles GET /api/share: restores form state from the same
// query parameters a share link carries (p, id, view).
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	result := h.service.Resolve(r.Context(), r.URL.Query())
	response.Success(w, result)
}

// SaveAutosave handles POST /api/autosave
func (h *ShareHandler) SaveAutosave(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.service.SaveAutosave(req.snapshot()); err != nil {
		response.InternalServerError(w, "Failed to save autosave", err)
		return
	}

	response.Success(w, map[string]bool{"saved": true})
}

// ClearAutosave handles DELETE /api/autosave
func (h *ShareHandler) ClearAutosave(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearAutosave(); err != nil {
		response.InternalServerError(w, "Failed to clear autosave", err)
		return
	}

	response.Success(w, map[string]bool{"cleared": true})
}
