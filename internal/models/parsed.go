package models

// ParsedTransaction is the best-effort draft extracted from freeform text.
// It is never persisted directly; the client reviews and resubmits it as a
// Transaction.
type ParsedTransaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Direction   string  `json:"direction"`
	Description string  `json:"description"`
	Merchant    *string `json:"merchant"`
}
