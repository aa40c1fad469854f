package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yeonsu-kang/dutchpay/internal/autosave"
	"github.com/yeonsu-kang/dutchpay/internal/config"
	"github.com/yeonsu-kang/dutchpay/internal/domain"
	"github.com/yeonsu-kang/dutchpay/internal/encoding"
	"github.com/yeonsu-kang/dutchpay/internal/repository"
	customError "github.com/yeonsu-kang/dutchpay/pkg/errors"
	"github.com/yeonsu-kang/dutchpay/pkg/metrics"
)

// LinkMode is the terminal state of a link-generation action.
type LinkMode string

const (
	// LinkModeInline embeds the encoded payload in the URL itself.
	LinkModeInline LinkMode = "inline"
	// LinkModeReference stores the payload server-side and embeds only
	// its id.
	LinkModeReference LinkMode = "reference"
)

// Warning grades the size of an inline link.
type Warning string

const (
	// WarningNone means the link is comfortably within limits.
	WarningNone Warning = ""
	// WarningLong means the link exceeds the warn threshold; surface a
	// non-blocking notice.
	WarningLong Warning = "long"
	// WarningVeryLong means the link exceeds the block threshold; ask
	// the user to confirm before navigating. The link itself is still
	// generated and shown.
	WarningVeryLong Warning = "very_long"
)

// Link is the outcome of a link-generation action.
type Link struct {
	URL           string   `json:"url"`
	Mode          LinkMode `json:"mode"`
	ID            string   `json:"id,omitempty"`
	EncodedLength int      `json:"encodedLength"`
	Warning       Warning  `json:"warning,omitempty"`
}

// ResolveResult is a restored form state plus its presentation hints.
type ResolveResult struct {
	Snapshot   *domain.Snapshot `json:"snapshot"`
	ViewerOnly bool             `json:"viewerOnly"`
	Source     string           `json:"source"`
}

// Resolve sources.
const (
	SourceInline    = "inline"
	SourceReference = "reference"
	SourceAutosave  = "autosave"
	SourceEmpty     = "empty"
)

// ShareService is the persistence router: it decides between inline
// URL embedding and store-by-reference when generating a link, and
// resolves either form back into a snapshot on load.
type ShareService struct {
	repo  repository.PayloadRepository
	cache *redis.Client
	cfg   *config.Config
}

func NewShareService(
	repo repository.PayloadRepository,
	cache *redis.Client,
	cfg *config.Config,
) *ShareService {
	return &ShareService{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

// CreateLink assembles the snapshot into a payload and produces a
// shareable URL for it.
//
// The encoded payload rides in the URL when it fits under the warn
// threshold. Past that, the raw payload is stored by reference and the
// URL carries only the id; if storage fails the already-encoded inline
// URL is used anyway. An oversized inline link is never blocked, only
// flagged so the caller can warn or ask for confirmation.
func (s *ShareService) CreateLink(ctx context.Context, snap *domain.Snapshot, baseURL string) (*Link, error) {
	if baseURL == "" {
		baseURL = s.cfg.Share.BaseURL
	}
	if baseURL == "" {
		return nil, customError.ErrEmptyBaseURL
	}

	payload := snap.Assemble()

	encoded, err := encoding.Encode(payload)
	if err != nil {
		return nil, customError.WrapInvalidPayload(err)
	}

	link := &Link{EncodedLength: len(encoded)}

	if len(encoded) > s.cfg.Share.WarnLength {
		body, err := json.Marshal(payload)
		if err == nil {
			id, storeErr := s.repo.Put(ctx, body)
			if storeErr == nil {
				link.Mode = LinkModeReference
				link.ID = id
				link.URL = buildURL(baseURL, "id", id)
				metrics.LinksGenerated.WithLabelValues(string(LinkModeReference)).Inc()
				return link, nil
			}
			// Best-effort: a failed store falls straight back to the
			// inline path, no retry.
			metrics.StoreFailures.Inc()
			slog.Warn("payload store failed, falling back to inline link", "error", storeErr)
		}
	}

	link.Mode = LinkModeInline
	link.URL = buildURL(baseURL, "p", encoded)
	switch {
	case len(encoded) > s.cfg.Share.BlockLength:
		link.Warning = WarningVeryLong
	case len(encoded) > s.cfg.Share.WarnLength:
		link.Warning = WarningLong
	}
	metrics.LinksGenerated.WithLabelValues(string(LinkModeInline)).Inc()
	return link, nil
}

// StorePayload stores a raw payload document and returns its id. The
// body must be a JSON document; its inner shape is deliberately not
// validated, matching the blob-store contract.
func (s *ShareService) StorePayload(ctx context.Context, body []byte) (string, error) {
	if !json.Valid(body) {
		return "", customError.WrapInvalidPayload(nil)
	}

	id, err := s.repo.Put(ctx, body)
	if err != nil {
		return "", customError.WrapStorageError(err)
	}
	return id, nil
}

// FetchPayload retrieves a stored payload by id, going through the
// read cache when one is configured.
func (s *ShareService) FetchPayload(ctx context.Context, id string) ([]byte, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey(id)).Bytes()
		if err == nil {
			metrics.PayloadFetches.WithLabelValues("cache_hit").Inc()
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			slog.Warn("payload cache read failed", "id", id, "error", err)
		}
	}

	body, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.PayloadFetches.WithLabelValues("not_found").Inc()
			return nil, customError.WrapPayloadNotFound(id)
		}
		metrics.PayloadFetches.WithLabelValues("error").Inc()
		return nil, customError.WrapStorageError(err)
	}
	metrics.PayloadFetches.WithLabelValues("hit").Inc()

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(id), body, s.cfg.GetCacheTTL()).Err(); err != nil {
			slog.Warn("payload cache write failed", "id", id, "error", err)
		}
	}
	return body, nil
}

// Resolve turns URL query parameters back into form state, in priority
// order: inline payload, then reference id, then the local autosave,
// then an empty form. Every failure path degrades silently to the next
// source; resolving the same parameters twice yields the same state.
func (s *ShareService) Resolve(ctx context.Context, params url.Values) *ResolveResult {
	viewerOnly := params.Get("view") == "1"

	if p := params.Get("p"); p != "" {
		if raw, ok := encoding.DecodeRaw(p); ok {
			return s.restored(raw, viewerOnly, SourceInline)
		}
		slog.Debug("inline payload did not decode, proceeding with defaults")
	}

	if id := params.Get("id"); id != "" {
		body, err := s.FetchPayload(ctx, id)
		if err == nil {
			return s.restored(body, viewerOnly, SourceReference)
		}
		slog.Debug("payload fetch failed, proceeding with defaults", "id", id, "error", err)
	}

	// No usable URL payload: fall back to the autosave, if any.
	if params.Get("p") == "" && params.Get("id") == "" && s.cfg.Autosave.Path != "" {
		if snap, ok := autosave.Load(s.cfg.Autosave.Path); ok {
			snap.ApplyShares()
			return &ResolveResult{Snapshot: snap, ViewerOnly: viewerOnly, Source: SourceAutosave}
		}
	}

	return &ResolveResult{Snapshot: domain.NewSnapshot(), ViewerOnly: viewerOnly, Source: SourceEmpty}
}

// SaveAutosave writes the snapshot to the configured autosave path.
// A blank path disables autosaving.
func (s *ShareService) SaveAutosave(snap *domain.Snapshot) error {
	if s.cfg.Autosave.Path == "" {
		return nil
	}
	return autosave.Save(s.cfg.Autosave.Path, snap, time.Now())
}

// ClearAutosave removes the autosave, part of the full-reset action.
func (s *ShareService) ClearAutosave() error {
	if s.cfg.Autosave.Path == "" {
		return nil
	}
	return autosave.Clear(s.cfg.Autosave.Path)
}

func (s *ShareService) restored(raw []byte, viewerOnly bool, source string) *ResolveResult {
	snap, meta := domain.Restore(raw)
	snap.ApplyShares()
	return &ResolveResult{
		Snapshot:   snap,
		ViewerOnly: viewerOnly || meta.ViewerOnly,
		Source:     source,
	}
}

func buildURL(baseURL, key, value string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fall back to naive concatenation for unparseable bases.
		sep := "?"
		if strings.Contains(baseURL, "?") {
			sep = "&"
		}
		return baseURL + sep + key + "=" + url.QueryEscape(value)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

func cacheKey(id string) string {
	return "payload:" + id
}
