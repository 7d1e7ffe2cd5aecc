package engine

import (
	"testing"
	"time"

	"go-almacen-pos/internal/model"
)

func reportState() model.AppState {
	day1 := time.Date(2024, 6, 10, 14, 0, 0, 0, time.Local)
	day2 := time.Date(2024, 6, 11, 9, 0, 0, 0, time.Local)
	return model.AppState{
		Products: []model.Product{
			{ID: "p1", Name: "Rice", Stock: 10, BasePrice: 2.0},
			{ID: "p2", Name: "Oil", Stock: 4, BasePrice: 5.0},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Type: model.TxSale, Total: 25, Date: day1},
			{ID: "t2", Type: model.TxConsignmentSettle, Total: 10, Date: day1},
			{ID: "t3", Type: model.TxConsignmentOut, Total: 0, Date: day1},
			{ID: "t4", Type: model.TxSale, Total: 40, Date: day2},
			{ID: "t5", Type: model.TxStockIn, Quantity: 50, Date: day1},
		},
		Consignments: []model.Consignment{
			{ID: "d1", CustomerID: "c1", CustomerName: "Maria", TotalExpected: 30, PaidAmount: 10,
				Status: model.ConsignmentPending},
			{ID: "d2", CustomerID: "c1", CustomerName: "Maria", TotalExpected: 15,
				Status: model.ConsignmentPending},
			{ID: "d3", CustomerID: "c2", CustomerName: "Pedro", TotalExpected: 50, PaidAmount: 50,
				Status: model.ConsignmentPaid},
			{ID: "d4", CustomerID: "c2", CustomerName: "Pedro", TotalExpected: 8,
				Status: model.ConsignmentPending},
		},
	}
}

func TestDailyReportSumsOneLocalDay(t *testing.T) {
	st := reportState()
	stats, receipt := DailyReport(st, testEnv(), "2024-06-10")

	if stats.CashSales != 25 {
		t.Fatalf("expected cash sales 25, got %.2f", stats.CashSales)
	}
	if stats.Settlements != 10 {
		t.Fatalf("expected settlements 10, got %.2f", stats.Settlements)
	}
	if stats.TotalCash != 35 {
		t.Fatalf("expected total 35, got %.2f", stats.TotalCash)
	}
	if receipt.Kind != model.ReceiptDailyReport || receipt.TotalAmount != 35 {
		t.Fatalf("unexpected report receipt: %+v", receipt)
	}
	if receipt.DailyStats == nil || receipt.DailyStats.TotalCash != 35 {
		t.Fatalf("receipt missing the stats block")
	}
}

func TestDailyReportEmptyDay(t *testing.T) {
	stats, _ := DailyReport(reportState(), testEnv(), "2024-01-01")
	if stats.TotalCash != 0 {
		t.Fatalf("expected zero cash on an empty day, got %.2f", stats.TotalCash)
	}
}

func TestDashboardStats(t *testing.T) {
	stats := Dashboard(reportState())

	// 25 + 40 sales plus the 10 settlement.
	if stats.TotalSales != 75 {
		t.Fatalf("expected total sales 75, got %.2f", stats.TotalSales)
	}
	// Pending remainders: 20 + 15 + 8. The PAID consignment contributes nothing.
	if stats.PendingDebt != 43 {
		t.Fatalf("expected pending debt 43, got %.2f", stats.PendingDebt)
	}
	if stats.InventoryValue != 40 {
		t.Fatalf("expected inventory value 40, got %.2f", stats.InventoryValue)
	}
}

func TestSalesByDaySortedAscending(t *testing.T) {
	points := SalesByDay(reportState())
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Date != "2024-06-10" || points[0].Amount != 35 {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
	if points[1].Date != "2024-06-11" || points[1].Amount != 40 {
		t.Fatalf("unexpected second point: %+v", points[1])
	}
}

func TestDebtsByCustomerGroupsPendingOnly(t *testing.T) {
	debts := DebtsByCustomer(reportState())
	if len(debts) != 2 {
		t.Fatalf("expected 2 debtors, got %d", len(debts))
	}

	maria := debts[0]
	if maria.CustomerID != "c1" || maria.TotalDebt != 35 || len(maria.Items) != 2 {
		t.Fatalf("unexpected first debtor: %+v", maria)
	}
	pedro := debts[1]
	if pedro.CustomerID != "c2" || pedro.TotalDebt != 8 || len(pedro.Items) != 1 {
		t.Fatalf("unexpected second debtor: %+v", pedro)
	}
}
