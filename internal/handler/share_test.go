package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yeonsu-kang/dutchpay/internal/encoding"
	"github.com/yeonsu-kang/dutchpay/internal/service"
	"github.com/yeonsu-kang/dutchpay/tests/mocks"
)

func newShareHandler(repo *mocks.MockPayloadRepository) *ShareHandler {
	return NewShareHandler(service.NewShareService(repo, nil, testConfig()))
}

func TestShareCreateLink(t *testing.T) {
	mockRepo := &mocks.MockPayloadRepository{}
	h := newShareHandler(mockRepo)

	body := `{
		"title": "회식",
		"total": "100",
		"participants": [
			{"id": "p1", "name": "김철수"},
			{"id": "p2", "name": "이영희"},
			{"id": "p3", "name": "박민수"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/share", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateLink(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    service.Link `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, service.LinkModeInline, resp.Data.Mode)
	assert.Contains(t, resp.Data.URL, "?p=")

	mockRepo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestShareCreateLinkRejectsBadAccountNumber(t *testing.T) {
	h := newShareHandler(&mocks.MockPayloadRepository{})

	body := `{"title": "회식", "accountNumber": "12-34-56a"}`
	req := httptest.NewRequest(http.MethodPost, "/api/share", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateLink(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareCreateLinkRejectsBadBody(t *testing.T) {
	h := newShareHandler(&mocks.MockPayloadRepository{})

	req := httptest.NewRequest(http.MethodPost, "/api/share", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.CreateLink(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareResolve(t *testing.T) {
	mockRepo := &mocks.MockPayloadRepository{}
	h := newShareHandler(mockRepo)

	encoded, err := encoding.Encode(map[string]any{
		"title":        "회식",
		"total":        100,
		"participants": []map[string]any{{"id": "p1", "name": "김철수"}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/share?view=1&p="+encoded, nil)
	rec := httptest.NewRecorder()

	h.Resolve(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data service.ResolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.SourceInline, resp.Data.Source)
	assert.True(t, resp.Data.ViewerOnly)
	assert.Equal(t, "회식", resp.Data.Snapshot.Title)
	require.Len(t, resp.Data.Snapshot.Participants, 1)
	assert.Equal(t, int64(100), resp.Data.Snapshot.Participants[0].Share)
}

func TestShareResolveGarbageYieldsEmptyForm(t *testing.T) {
	h := newShareHandler(&mocks.MockPayloadRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/share?p=not-a-valid-encoded-string", nil)
	rec := httptest.NewRecorder()

	h.Resolve(rec, req)

	// A corrupted link is never an error, just an empty form.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data service.ResolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.SourceEmpty, resp.Data.Source)
	assert.Equal(t, "", resp.Data.Snapshot.Title)
}
