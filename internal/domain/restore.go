package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Meta is the envelope some payload variants carry alongside the form
// fields: the autosave timestamp and the viewer-only rendering hint.
type Meta struct {
	ViewerOnly bool   `json:"viewerOnly,omitempty"`
	SavedAt    string `json:"savedAt,omitempty"`
}

// wire* types mirror the payload loosely enough to accept documents
// from any encoder version. Every field is optional.
type wirePayload struct {
	Title        *string           `json:"title"`
	Total        json.RawMessage   `json:"total"`
	Period       *wirePeriod       `json:"period"`
	Participants []wireParticipant `json:"participants"`
	DetailItems  []wireDetailItem  `json:"detailItems"`
	Account      *Account          `json:"account"`
	Meta         *wireMeta         `json:"meta"`
}

type wirePeriod struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type wireParticipant struct {
	ID   json.RawMessage `json:"id"`
	Name *string         `json:"name"`
}

type wireDetailItem struct {
	ID     json.RawMessage `json:"id"`
	Title  *string         `json:"title"`
	Amount json.RawMessage `json:"amount"`
}

type wireMeta struct {
	Account    *Account `json:"account"`
	ViewerOnly bool     `json:"viewerOnly"`
	SavedAt    string   `json:"savedAt"`
}

// Restore populates a fresh snapshot from a decoded or fetched document
// of unknown shape. Every missing field gets its empty-form default;
// nothing in the result is ever nil. Shares are not restored from the
// wire: callers recompute them, which keeps restoration idempotent.
func Restore(raw []byte) (*Snapshot, Meta) {
	snap := NewSnapshot()
	meta := Meta{}

	// Type-mismatched fields are left at their zero value while the
	// rest still decode, so a partially malformed document restores as
	// much as it can instead of nothing.
	var w wirePayload
	_ = json.Unmarshal(raw, &w)

	if w.Title != nil {
		snap.Title = *w.Title
	}
	if w.Period != nil {
		snap.PeriodFrom = stringOrEmpty(w.Period.From)
		snap.PeriodTo = stringOrEmpty(w.Period.To)
	}

	snap.Total = rawAmountString(w.Total)

	for i, wp := range w.Participants {
		p := Participant{
			ID:   rawIDString(wp.ID),
			Name: stringOrEmpty(wp.Name),
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("p%d", i+1)
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("참여자 %d", i+1)
		}
		snap.Participants = append(snap.Participants, p)
	}

	for i, wd := range w.DetailItems {
		id := rawIDString(wd.ID)
		if id == "" {
			id = fmt.Sprintf("d%d", i+1)
		} else if !strings.HasPrefix(id, "d") {
			id = "d" + id
		}
		snap.DetailItems = append(snap.DetailItems, DetailItemDraft{
			ID:     id,
			Title:  stringOrEmpty(wd.Title),
			Amount: rawAmountString(wd.Amount),
		})
	}

	// Some older payloads tucked the account under meta.
	account := w.Account
	if account == nil && w.Meta != nil {
		account = w.Meta.Account
	}
	if account != nil {
		snap.AccountBank = stringOrEmpty(account.Bank)
		snap.AccountNumber = stringOrEmpty(account.Number)
	}

	if w.Meta != nil {
		meta.ViewerOnly = w.Meta.ViewerOnly
		meta.SavedAt = w.Meta.SavedAt
	}

	return snap, meta
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// rawIDString renders an id that may arrive as a JSON string or number.
func rawIDString(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawAmountString renders an amount that may arrive as a JSON number or
// string, keeping "" for absent or null so "unset" survives the trip.
func rawAmountString(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
