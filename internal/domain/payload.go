// Package domain defines the shareable payload shape, the editable
// form state it is projected from, and the projections between the two.
package domain

import (
	"encoding/json"
)

// DefaultCurrency is the only currency the payload carries today.
const DefaultCurrency = "KRW"

// DefaultTitle is used when a link is generated without a title.
const DefaultTitle = "제목"

// Participant is one person in the split. Share is derived by the
// calculator, never user-set. Deduction only affects the displayed
// final amount and stays off the wire.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Share     int64  `json:"share"`
	Deduction int64  `json:"-"`
}

// DetailItem is one line item. When any detail items exist the payload
// total is their sum, not a free-form amount.
type DetailItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Amount int64  `json:"amount"`
}

// Period is the covered date range, ISO dates without time. Empty
// bounds are null on the wire.
type Period struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// Account is the optional bank account for transfers.
//
// Older encoders produced either a bare string (the account number) or
// an object using the field names num or account. UnmarshalJSON accepts
// all of those so links generated by previous versions keep resolving.
type Account struct {
	Bank   *string `json:"bank"`
	Number *string `json:"number"`
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var number string
	if err := json.Unmarshal(data, &number); err == nil {
		a.Bank = nil
		a.Number = &number
		return nil
	}

	var obj struct {
		Bank    *string `json:"bank"`
		Number  *string `json:"number"`
		Num     *string `json:"num"`
		Account *string `json:"account"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unknown shape: treat as no account rather than failing the
		// whole restore.
		a.Bank = nil
		a.Number = nil
		return nil
	}

	a.Bank = obj.Bank
	a.Number = obj.Number
	if a.Number == nil {
		a.Number = obj.Num
	}
	if a.Number == nil {
		a.Number = obj.Account
	}
	return nil
}

// Payload is the canonical shareable snapshot. It is built fresh on
// every link-generation action and never mutated afterwards.
type Payload struct {
	Title        string        `json:"title"`
	Total        int64         `json:"total"`
	Period       Period        `json:"period"`
	Currency     string        `json:"currency"`
	Participants []Participant `json:"participants"`
	DetailItems  []DetailItem  `json:"detailItems,omitempty"`
	Account      *Account      `json:"account,omitempty"`
}
