package domain

import (
	"github.com/yeonsu-kang/dutchpay/internal/split"
)

// ApplyShares recomputes every participant's share from the snapshot's
// effective total, in list order. Run on every total or head-count
// change, and again right before assembling a payload so the wire form
// never carries stale shares.
func (s *Snapshot) ApplyShares() {
	shares := split.Shares(s.EffectiveTotal(), len(s.Participants))
	for i := range s.Participants {
		s.Participants[i].Share = shares[i]
	}
}

// EffectiveTotal is the integer total the calculator works from: the
// sum of detail items when itemized, otherwise the coerced flat input.
func (s *Snapshot) EffectiveTotal() int64 {
	if s.Itemized() {
		return s.itemSum()
	}
	return split.ParseAmount(s.Total)
}

func (s *Snapshot) itemSum() int64 {
	var sum int64
	for _, it := range s.DetailItems {
		sum += split.ParseAmount(it.Amount)
	}
	return sum
}

// Assemble projects the snapshot into the canonical shareable payload.
// Shares are recomputed first; detail items and account are included
// only when present so sparse forms encode compactly.
func (s *Snapshot) Assemble() *Payload {
	s.ApplyShares()

	title := s.Title
	if title == "" {
		title = DefaultTitle
	}

	p := &Payload{
		Title:        title,
		Total:        s.EffectiveTotal(),
		Period:       Period{From: nullable(s.PeriodFrom), To: nullable(s.PeriodTo)},
		Currency:     DefaultCurrency,
		Participants: make([]Participant, len(s.Participants)),
	}
	copy(p.Participants, s.Participants)

	if s.Itemized() {
		p.DetailItems = make([]DetailItem, len(s.DetailItems))
		for i, it := range s.DetailItems {
			p.DetailItems[i] = DetailItem{
				ID:     it.ID,
				Title:  it.Title,
				Amount: split.ParseAmount(it.Amount),
			}
		}
	}

	if s.AccountBank != "" || s.AccountNumber != "" {
		p.Account = &Account{
			Bank:   nullable(s.AccountBank),
			Number: nullable(s.AccountNumber),
		}
	}

	return p
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
