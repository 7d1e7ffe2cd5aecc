package model

import "time"

type ConsignmentStatus string

const (
	ConsignmentPending ConsignmentStatus = "PENDING"
	ConsignmentPaid    ConsignmentStatus = "PAID"
	// Reserved; no current flow produces it.
	ConsignmentCancelled ConsignmentStatus = "CANCELLED"
)

// Consignment is one extended-credit grant ("fiado"): goods handed over now,
// paid for over time through settlements.
type Consignment struct {
	ID           string `gorm:"type:varchar(64);primaryKey" json:"id"`
	CustomerID   string `gorm:"type:varchar(64);index;not null" json:"customer_id"`
	CustomerName string `gorm:"type:varchar(255)" json:"customer_name"`
	ProductID    string `gorm:"type:varchar(64)" json:"product_id"`
	ProductName  string `gorm:"type:varchar(255)" json:"product_name"` // snapshot

	// Quantity counts sale items (boxes or units as sold), not stock units.
	Quantity           int     `json:"quantity"`
	AgreedPricePerUnit float64 `json:"agreed_price_per_unit"`
	TotalExpected      float64 `json:"total_expected"`
	PaidAmount         float64 `json:"paid_amount"`

	Status      ConsignmentStatus `gorm:"type:varchar(20);index" json:"status"`
	DateCreated time.Time         `json:"date_created"`
	DateSettled *time.Time        `json:"date_settled,omitempty"`
}

// Remaining is the outstanding balance. Settlement math clamps elsewhere, so
// small negative drift is possible here and callers tolerate it.
func (c Consignment) Remaining() float64 {
	return c.TotalExpected - c.PaidAmount
}

func (c Consignment) Clone() Consignment {
	out := c
	if c.DateSettled != nil {
		t := *c.DateSettled
		out.DateSettled = &t
	}
	return out
}
