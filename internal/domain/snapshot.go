package domain

import (
	"fmt"
	"time"

	apperrors "github.com/yeonsu-kang/dutchpay/pkg/errors"
)

// DetailItemDraft is a detail item as edited, with the amount still in
// its raw input form ("" meaning unset).
type DetailItemDraft struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Amount string `json:"amount"`
}

// Snapshot is the editable form state the payload is projected from.
// Total holds the raw input string so "unset" ("") stays distinct
// from an explicit 0.
type Snapshot struct {
	Title         string            `json:"title"`
	PeriodFrom    string            `json:"periodFrom"`
	PeriodTo      string            `json:"periodTo"`
	Total         string            `json:"total"`
	Participants  []Participant     `json:"participants"`
	DetailItems   []DetailItemDraft `json:"detailItems"`
	AccountBank   string            `json:"accountBank"`
	AccountNumber string            `json:"accountNumber"`
}

// NewSnapshot returns an empty snapshot with non-nil slices, so state
// consumers never see null where a list is expected.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Participants: []Participant{},
		DetailItems:  []DetailItemDraft{},
	}
}

// Reset clears all fields back to the empty-form state.
func (s *Snapshot) Reset() {
	*s = *NewSnapshot()
}

// Itemized reports whether the snapshot is in itemized mode, where the
// total is derived from the detail items.
func (s *Snapshot) Itemized() bool {
	return len(s.DetailItems) > 0
}

// SetTotal sets the flat total from raw input. While detail items
// exist the total is theirs to define; callers must confirm and call
// ClearDetailItems before setting it directly.
func (s *Snapshot) SetTotal(raw string) error {
	if s.Itemized() {
		return apperrors.ErrItemizedTotal
	}
	s.Total = raw
	return nil
}

// AddParticipant appends a participant. Ids are positional: p1..pN.
func (s *Snapshot) AddParticipant(name string) {
	s.Participants = append(s.Participants, Participant{
		ID:   fmt.Sprintf("p%d", len(s.Participants)+1),
		Name: name,
	})
}

// RemoveParticipant removes the participant with the given id and
// renumbers the remaining ids to stay contiguous.
func (s *Snapshot) RemoveParticipant(id string) {
	kept := s.Participants[:0]
	for _, p := range s.Participants {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	for i := range kept {
		kept[i].ID = fmt.Sprintf("p%d", i+1)
	}
	s.Participants = kept
}

// RenameParticipant updates the name of the participant with the given
// id; unknown ids are ignored.
func (s *Snapshot) RenameParticipant(id, name string) {
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			s.Participants[i].Name = name
			return
		}
	}
}

// AddDetailItem appends an empty line item with a time-based synthetic
// id, bumped until unique within the snapshot.
func (s *Snapshot) AddDetailItem() *DetailItemDraft {
	ms := time.Now().UnixMilli()
	id := fmt.Sprintf("d%d", ms)
	for s.hasDetailItem(id) {
		ms++
		id = fmt.Sprintf("d%d", ms)
	}
	s.DetailItems = append(s.DetailItems, DetailItemDraft{ID: id})
	return &s.DetailItems[len(s.DetailItems)-1]
}

// UpdateDetailItem sets the title and raw amount of the item with the
// given id and resyncs the derived total; unknown ids are ignored.
func (s *Snapshot) UpdateDetailItem(id, title, amount string) {
	for i := range s.DetailItems {
		if s.DetailItems[i].ID == id {
			s.DetailItems[i].Title = title
			s.DetailItems[i].Amount = amount
			s.syncTotalFromItems()
			return
		}
	}
}

// RemoveDetailItem removes the item with the given id. The derived
// total follows the remaining items; removing the last item leaves the
// total at the last derived value as a flat amount.
func (s *Snapshot) RemoveDetailItem(id string) {
	kept := s.DetailItems[:0]
	for _, it := range s.DetailItems {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.DetailItems = kept
	if s.Itemized() {
		s.syncTotalFromItems()
	}
}

// ClearDetailItems drops all line items, switching back to flat-total
// mode. Meant to be called after the user confirmed the switch.
func (s *Snapshot) ClearDetailItems() {
	s.DetailItems = s.DetailItems[:0]
}

func (s *Snapshot) hasDetailItem(id string) bool {
	for _, it := range s.DetailItems {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (s *Snapshot) syncTotalFromItems() {
	s.Total = fmt.Sprintf("%d", s.itemSum())
}
