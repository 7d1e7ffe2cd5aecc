package model

import "time"

type ReceiptKind string

const (
	ReceiptSale        ReceiptKind = "SALE"
	ReceiptConsignment ReceiptKind = "CONSIGNMENT"
	ReceiptSettlement  ReceiptKind = "SETTLEMENT"
	ReceiptDailyReport ReceiptKind = "DAILY_REPORT"
)

type ReceiptItem struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
	Total float64 `json:"total"`
}

// DailyStats summarizes one local calendar day of cash movement.
type DailyStats struct {
	CashSales   float64 `json:"cash_sales"`
	Settlements float64 `json:"settlements"`
	TotalCash   float64 `json:"total_cash"`
}

// Receipt is the record handed to the printing collaborator. The core only
// builds it; it is never parsed back.
type Receipt struct {
	Kind         ReceiptKind   `json:"kind"`
	Title        string        `json:"title"`
	Date         time.Time     `json:"date"`
	ID           string        `json:"id"`
	CustomerName string        `json:"customer_name"`
	CustomerCI   string        `json:"customer_ci,omitempty"`
	Items        []ReceiptItem `json:"items"`
	TotalAmount  float64       `json:"total_amount"`
	Notes        string        `json:"notes,omitempty"`
	DailyStats   *DailyStats   `json:"daily_stats,omitempty"`
}
