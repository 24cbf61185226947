package models

import "time"

// Transaction directions. Amount is always stored as a magnitude; the
// direction carries the sign.
const (
	DirectionExpense = "expense"
	DirectionIncome  = "income"
)

// Transaction represents a single expense or income record.
type Transaction struct {
	Date        time.Time `json:"date" bson:"date"`
	Amount      float64   `json:"amount" bson:"amount"`
	Direction   string    `json:"direction" bson:"direction"`
	Description string    `json:"description" bson:"description"`
	CategoryID  string    `json:"category_id,omitempty" bson:"category_id,omitempty"`
	AccountID   string    `json:"account_id,omitempty" bson:"account_id,omitempty"`
	Merchant    string    `json:"merchant,omitempty" bson:"merchant,omitempty"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
}
