package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/yeonsu-kang/dutchpay/internal/service"
	customError "github.com/yeonsu-kang/dutchpay/pkg/errors"
	"github.com/yeonsu-kang/dutchpay/pkg/response"
)

// Stored payloads are share links, not uploads; anything past this is
// not a legitimate payload.
const maxPayloadBytes = 1 << 20

// PayloadHandler serves the store-by-reference endpoint. Its wire
// format is bare JSON ({"id": ...} / {"error": ...} / the stored
// document itself) for compatibility with existing share links, so it
// bypasses the response envelope on purpose.
type PayloadHandler struct {
	service *service.ShareService
}

func NewPayloadHandler(service *service.ShareService) *PayloadHandler {
	return &PayloadHandler{service: service}
}

type storeResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Store handles POST /api/payload: body is the raw payload JSON, the
// response carries the generated id.
func (h *PayloadHandler) Store(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > maxPayloadBytes {
		h.writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	id, err := h.service.StorePayload(r.Context(), body)
	if err != nil {
		if errors.Is(err, customError.ErrInvalidPayload) {
			h.writeError(w, http.StatusBadRequest, "body must be valid JSON")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "failed to store payload")
		return
	}

	h.writeJSON(w, http.StatusOK, storeResponse{ID: id})
}

// Fetch handles GET /api/payload?id=: responds with the stored raw
// payload document. Unknown ids are a 404 the client treats as "link
// went stale", never a hard failure.
func (h *PayloadHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing id")
		return
	}

	body, err := h.service.FetchPayload(r.Context(), id)
	if err != nil {
		if errors.Is(err, customError.ErrPayloadNotFound) {
			h.writeError(w, http.StatusNotFound, "payload not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "failed to fetch payload")
		return
	}

	response.RawJSON(w, http.StatusOK, body)
}

func (h *PayloadHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	response.RawJSON(w, status, data)
}

func (h *PayloadHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
