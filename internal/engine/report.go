package engine

import (
	"fmt"
	"sort"

	"go-almacen-pos/internal/model"
)

const localDayLayout = "2006-01-02"

// DailyReport sums the cash movement of one local calendar day: direct sale
// totals plus settlement collections. Pure query; returns a receipt-shaped
// record for the till printer.
func DailyReport(st model.AppState, env Env, day string) (model.DailyStats, model.Receipt) {
	var stats model.DailyStats
	count := 0
	for _, tx := range st.Transactions {
		if tx.Date.Local().Format(localDayLayout) != day {
			continue
		}
		count++
		switch tx.Type {
		case model.TxSale:
			stats.CashSales += tx.Total
		case model.TxConsignmentSettle:
			stats.Settlements += tx.Total
		}
	}
	stats.TotalCash = stats.CashSales + stats.Settlements

	statsCopy := stats
	receipt := model.Receipt{
		Kind:         model.ReceiptDailyReport,
		Title:        "DAILY CASH REPORT",
		Date:         env.Now(),
		ID:           "REPORT-" + day,
		CustomerName: fmt.Sprintf("ADMINISTRATION (%s)", env.Actor),
		Items: []model.ReceiptItem{
			{Name: "Direct sales total", Qty: 1, Price: stats.CashSales, Total: stats.CashSales},
			{Name: "Debt collections total", Qty: 1, Price: stats.Settlements, Total: stats.Settlements},
		},
		TotalAmount: stats.TotalCash,
		DailyStats:  &statsCopy,
		Notes: fmt.Sprintf("Reported day: %s. Total cash collected: %.2f (%d transactions)",
			day, stats.TotalCash, count),
	}
	return stats, receipt
}

// DashboardStats is the overview block for the main screen.
type DashboardStats struct {
	TotalSales     float64 `json:"total_sales"`     // SALE + CONSIGNMENT_SETTLE totals
	PendingDebt    float64 `json:"pending_debt"`    // remaining balances of PENDING consignments
	InventoryValue float64 `json:"inventory_value"` // stock x base price
}

func Dashboard(st model.AppState) DashboardStats {
	var stats DashboardStats
	for _, tx := range st.Transactions {
		if tx.Type == model.TxSale || tx.Type == model.TxConsignmentSettle {
			stats.TotalSales += tx.Total
		}
	}
	for _, c := range st.Consignments {
		if c.Status == model.ConsignmentPending {
			stats.PendingDebt += c.Remaining()
		}
	}
	for _, p := range st.Products {
		stats.InventoryValue += float64(p.Stock) * p.BasePrice
	}
	return stats
}

// SalesPoint is one day of cash income for the dashboard chart.
type SalesPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

func SalesByDay(st model.AppState) []SalesPoint {
	grouped := map[string]float64{}
	for _, tx := range st.Transactions {
		if tx.Type != model.TxSale && tx.Type != model.TxConsignmentSettle {
			continue
		}
		day := tx.Date.Local().Format(localDayLayout)
		grouped[day] += tx.Total
	}
	points := make([]SalesPoint, 0, len(grouped))
	for day, amount := range grouped {
		points = append(points, SalesPoint{Date: day, Amount: amount})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// CustomerDebt groups a customer's open consignments with their total
// outstanding balance, for the debts view and for reconciliation checks.
type CustomerDebt struct {
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	CustomerCI   string              `json:"customer_ci,omitempty"`
	TotalDebt    float64             `json:"total_debt"`
	Items        []model.Consignment `json:"items"`
}

func DebtsByCustomer(st model.AppState) []CustomerDebt {
	byCustomer := map[string]*CustomerDebt{}
	var order []string
	for _, c := range st.Consignments {
		if c.Status != model.ConsignmentPending {
			continue
		}
		group, ok := byCustomer[c.CustomerID]
		if !ok {
			group = &CustomerDebt{CustomerID: c.CustomerID, CustomerName: c.CustomerName}
			if cust := st.CustomerByID(c.CustomerID); cust != nil {
				group.CustomerName = cust.Name
				group.CustomerCI = cust.CI
			}
			byCustomer[c.CustomerID] = group
			order = append(order, c.CustomerID)
		}
		group.TotalDebt += c.Remaining()
		group.Items = append(group.Items, c)
	}

	debts := make([]CustomerDebt, 0, len(order))
	for _, id := range order {
		debts = append(debts, *byCustomer[id])
	}
	return debts
}
