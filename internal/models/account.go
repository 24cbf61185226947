package models

// Account types accepted by the API.
const (
	AccountTypeCash  = "cash"
	AccountTypeCard  = "card"
	AccountTypeBank  = "bank"
	AccountTypeOther = "other"
)

type Account struct {
	Name     string `json:"name" bson:"name"`
	Type     string `json:"type" bson:"type"`
	Currency string `json:"currency" bson:"currency"`
	Note     string `json:"note,omitempty" bson:"note,omitempty"`
}
