package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonsu-kang/dutchpay/internal/config"
	"github.com/yeonsu-kang/dutchpay/internal/domain"
	"github.com/yeonsu-kang/dutchpay/internal/handler"
	"github.com/yeonsu-kang/dutchpay/internal/repository"
	"github.com/yeonsu-kang/dutchpay/internal/service"
)

// newTestServer wires the real stack: file-backed store, share service
// and HTTP handlers, no mocks.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Share: config.ShareConfig{
			BaseURL:     "http://localhost:8080/",
			WarnLength:  3000,
			BlockLength: 8000,
			Currency:    "KRW",
		},
		Redis: config.RedisConfig{TTL: "24h"},
	}

	repo, err := repository.NewFileRepository(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	shareService := service.NewShareService(repo, nil, cfg)
	payloadHandler := handler.NewPayloadHandler(shareService)
	shareHandler := handler.NewShareHandler(shareService)

	router := mux.NewRouter()
	router.HandleFunc("/api/payload", payloadHandler.Store).Methods("POST")
	router.HandleFunc("/api/payload", payloadHandler.Fetch).Methods("GET")
	router.HandleFunc("/api/share", shareHandler.CreateLink).Methods("POST")
	router.HandleFunc("/api/share", shareHandler.Resolve).Methods("GET")

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

type linkEnvelope struct {
	Success bool         `json:"success"`
	Data    service.Link `json:"data"`
}

type resolveEnvelope struct {
	Success bool                  `json:"success"`
	Data    service.ResolveResult `json:"data"`
}

func TestInlineShareFlow(t *testing.T) {
	server := newTestServer(t)

	body := `{
		"title": "회식",
		"total": "100",
		"participants": [
			{"id": "p1", "name": "김철수"},
			{"id": "p2", "name": "이영희"},
			{"id": "p3", "name": "박민수"}
		]
	}`
	resp, err := http.Post(server.URL+"/api/share", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var link linkEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&link))
	assert.Equal(t, service.LinkModeInline, link.Data.Mode)

	// The generated URL resolves back to the same form state.
	u, err := url.Parse(link.Data.URL)
	require.NoError(t, err)

	resolveResp, err := http.Get(server.URL + "/api/share?p=" + url.QueryEscape(u.Query().Get("p")))
	require.NoError(t, err)
	defer resolveResp.Body.Close()
	require.Equal(t, http.StatusOK, resolveResp.StatusCode)

	var resolved resolveEnvelope
	require.NoError(t, json.NewDecoder(resolveResp.Body).Decode(&resolved))
	assert.Equal(t, service.SourceInline, resolved.Data.Source)
	assert.Equal(t, "회식", resolved.Data.Snapshot.Title)
	require.Len(t, resolved.Data.Snapshot.Participants, 3)
	assert.Equal(t, int64(34), resolved.Data.Snapshot.Participants[0].Share)
	assert.Equal(t, int64(33), resolved.Data.Snapshot.Participants[1].Share)
	assert.Equal(t, int64(33), resolved.Data.Snapshot.Participants[2].Share)
}

func TestByReferenceShareFlow(t *testing.T) {
	server := newTestServer(t)

	// A title past the warn threshold forces the store-by-reference
	// path.
	payload := map[string]any{
		"title":        strings.Repeat("a", 4000),
		"total":        "100",
		"participants": []map[string]string{{"id": "p1", "name": "김철수"}},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/share", "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var link linkEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&link))
	assert.Equal(t, service.LinkModeReference, link.Data.Mode)
	require.NotEmpty(t, link.Data.ID)

	// The stored payload is retrievable verbatim.
	payloadResp, err := http.Get(server.URL + "/api/payload?id=" + link.Data.ID)
	require.NoError(t, err)
	defer payloadResp.Body.Close()
	require.Equal(t, http.StatusOK, payloadResp.StatusCode)

	var stored domain.Payload
	require.NoError(t, json.NewDecoder(payloadResp.Body).Decode(&stored))
	assert.Equal(t, strings.Repeat("a", 4000), stored.Title)
	assert.Equal(t, int64(100), stored.Total)

	// And the id URL resolves to the same form state.
	resolveResp, err := http.Get(server.URL + "/api/share?id=" + link.Data.ID)
	require.NoError(t, err)
	defer resolveResp.Body.Close()

	var resolved resolveEnvelope
	require.NoError(t, json.NewDecoder(resolveResp.Body).Decode(&resolved))
	assert.Equal(t, service.SourceReference, resolved.Data.Source)
	require.Len(t, resolved.Data.Snapshot.Participants, 1)
	assert.Equal(t, int64(100), resolved.Data.Snapshot.Participants[0].Share)
}

func TestStoreAndFetchRawPayload(t *testing.T) {
	server := newTestServer(t)

	raw := `{"title":"레거시","total":50,"account":"110-123-456789"}`
	resp, err := http.Post(server.URL+"/api/payload", "application/json", strings.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stored))
	require.NotEmpty(t, stored.ID)

	// Legacy bare-string account shape survives the reference path.
	resolveResp, err := http.Get(server.URL + "/api/share?id=" + stored.ID)
	require.NoError(t, err)
	defer resolveResp.Body.Close()

	var resolved resolveEnvelope
	require.NoError(t, json.NewDecoder(resolveResp.Body).Decode(&resolved))
	assert.Equal(t, "110-123-456789", resolved.Data.Snapshot.AccountNumber)
	assert.Equal(t, "", resolved.Data.Snapshot.AccountBank)
}

func TestUnknownIDDegradesGracefully(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/payload?id=doesnotexist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Resolving the same stale id is still a 200 with an empty form.
	resolveResp, err := http.Get(server.URL + "/api/share?id=doesnotexist")
	require.NoError(t, err)
	defer resolveResp.Body.Close()
	require.Equal(t, http.StatusOK, resolveResp.StatusCode)

	var resolved resolveEnvelope
	require.NoError(t, json.NewDecoder(resolveResp.Body).Decode(&resolved))
	assert.Equal(t, service.SourceEmpty, resolved.Data.Source)
	assert.Equal(t, "", resolved.Data.Snapshot.Title)
}
