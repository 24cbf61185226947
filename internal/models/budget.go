package models

import "time"

// Budget periods. StartDate/EndDate only matter for PeriodCustom.
const (
	PeriodMonthly = "monthly"
	PeriodWeekly  = "weekly"
	PeriodYearly  = "yearly"
	PeriodCustom  = "custom"
)

// Budget caps spending for one category over a period.
type Budget struct {
	CategoryID string     `json:"category_id" bson:"category_id"`
	Amount     float64    `json:"amount" bson:"amount"`
	Period     string     `json:"period" bson:"period"`
	StartDate  *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
}
