package model

import "time"

type TransactionType string

const (
	TxStockIn           TransactionType = "STOCK_IN"
	TxSale              TransactionType = "SALE"
	TxConsignmentOut    TransactionType = "CONSIGNMENT_OUT"
	TxConsignmentSettle TransactionType = "CONSIGNMENT_SETTLE"
	TxReturn            TransactionType = "RETURN"
)

// Transaction is one ledger entry. Immutable once committed, with a single
// exception: a manual consignment edit may patch the PricePerUnit of the
// originating CONSIGNMENT_OUT entry to keep historical reports consistent.
type Transaction struct {
	ID   string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Type TransactionType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=STOCK_IN SALE CONSIGNMENT_OUT CONSIGNMENT_SETTLE RETURN"`

	ProductID string `gorm:"type:varchar(64);index" json:"product_id"`
	// Quantity is the unit-equivalent stock movement. Box sales record
	// boxes*unitsPerBox here so stock math never cares about pack size.
	// Pure cash events (settlements) record 0.
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	// Total is the cash recognized by this entry. CONSIGNMENT_OUT records 0:
	// cash only exists once a settlement arrives.
	Total float64   `json:"total"`
	Date  time.Time `gorm:"index" json:"date"`
	Note  string    `gorm:"type:text" json:"note,omitempty"`

	// Settlements and grants share the consignment's id here.
	RelatedConsignmentID string `gorm:"type:varchar(64);index" json:"related_consignment_id,omitempty"`

	// Customer snapshot, copied at commit time so history survives customer edits.
	CustomerID   string `gorm:"type:varchar(64)" json:"customer_id,omitempty"`
	CustomerName string `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
}
