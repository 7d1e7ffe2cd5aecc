package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"go-almacen-pos/internal/model"
)

func debtState() model.AppState {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	return model.AppState{
		Customers: []model.Customer{
			{ID: "c1", Name: "Maria Lopez", CI: "12345"},
		},
		Consignments: []model.Consignment{
			{ID: "d1", CustomerID: "c1", CustomerName: "Maria Lopez", ProductName: "Rice",
				Quantity: 10, TotalExpected: 30, Status: model.ConsignmentPending, DateCreated: base},
			{ID: "d2", CustomerID: "c1", CustomerName: "Maria Lopez", ProductName: "Oil",
				Quantity: 5, TotalExpected: 50, Status: model.ConsignmentPending, DateCreated: base.Add(24 * time.Hour)},
			{ID: "d3", CustomerID: "c1", CustomerName: "Maria Lopez", ProductName: "Sugar",
				Quantity: 4, TotalExpected: 20, Status: model.ConsignmentPending, DateCreated: base.Add(48 * time.Hour)},
		},
	}
}

func TestSettleWithinEpsilonClosesDebt(t *testing.T) {
	st := debtState()
	env := testEnv()

	// 30.05 against a 30.00 debt: inside the 0.1 tolerance, accepted and closed.
	proposal, err := SettleConsignment(st, env, "d1", 30.05)
	if err != nil {
		t.Fatalf("settlement failed: %v", err)
	}
	c := proposal.Next.ConsignmentByID("d1")
	if c.Status != model.ConsignmentPaid {
		t.Fatalf("expected PAID, got %s", c.Status)
	}
	if c.DateSettled == nil {
		t.Fatalf("expected settlement date on a closed debt")
	}
	if n := countTx(proposal.Next, model.TxConsignmentSettle); n != 1 {
		t.Fatalf("expected 1 settlement transaction, got %d", n)
	}
}

func TestSettleBeyondEpsilonRejected(t *testing.T) {
	st := debtState()
	env := testEnv()

	_, err := SettleConsignment(st, env, "d1", 30.2)
	if !errors.Is(err, ErrOverpayment) {
		t.Fatalf("expected overpayment, got %v", err)
	}
	// Overpayment is also a validation failure for callers routing coarsely.
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("overpayment should unwrap to validation, got %v", err)
	}
}

func TestSettlePartialStaysPending(t *testing.T) {
	st := debtState()
	env := testEnv()

	proposal, err := SettleConsignment(st, env, "d2", 10)
	if err != nil {
		t.Fatalf("settlement failed: %v", err)
	}
	c := proposal.Next.ConsignmentByID("d2")
	if c.Status != model.ConsignmentPending || c.PaidAmount != 10 {
		t.Fatalf("unexpected state after partial payment: %+v", c)
	}
	if c.DateSettled != nil {
		t.Fatalf("partial payment must not carry a settlement date")
	}
}

func TestSettleClosesUnderHalfUnitRemainder(t *testing.T) {
	st := debtState()
	env := testEnv()

	// 29.7 leaves 0.3 outstanding, under the single-path 0.5 close threshold.
	proposal, err := SettleConsignment(st, env, "d1", 29.7)
	if err != nil {
		t.Fatalf("settlement failed: %v", err)
	}
	if c := proposal.Next.ConsignmentByID("d1"); c.Status != model.ConsignmentPaid {
		t.Fatalf("expected PAID at remainder 0.3, got %s", c.Status)
	}
}

func TestSettleRejectsNonPositiveAmount(t *testing.T) {
	if _, err := SettleConsignment(debtState(), testEnv(), "d1", 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := SettleConsignment(debtState(), testEnv(), "d1", -5); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBulkSettlementDistributesOldestFirst(t *testing.T) {
	st := debtState() // debts 30, 50, 20 in age order
	env := testEnv()

	proposal, err := SettleCustomerDebt(st, env, "c1", 60)
	if err != nil {
		t.Fatalf("bulk settlement failed: %v", err)
	}
	next := proposal.Next

	d1 := next.ConsignmentByID("d1")
	d2 := next.ConsignmentByID("d2")
	d3 := next.ConsignmentByID("d3")
	if d1.Status != model.ConsignmentPaid || d1.PaidAmount != 30 {
		t.Fatalf("oldest debt should be fully paid: %+v", d1)
	}
	if d2.Status != model.ConsignmentPending || d2.PaidAmount != 30 {
		t.Fatalf("second debt should hold the 30 leftover: %+v", d2)
	}
	if d3.Status != model.ConsignmentPending || d3.PaidAmount != 0 {
		t.Fatalf("youngest debt should be untouched: %+v", d3)
	}

	var settles []model.Transaction
	for _, tx := range next.Transactions {
		if tx.Type == model.TxConsignmentSettle {
			settles = append(settles, tx)
		}
	}
	if len(settles) != 2 {
		t.Fatalf("expected 2 settlement transactions, got %d", len(settles))
	}
	if settles[0].Total != 30 || settles[1].Total != 30 {
		t.Fatalf("expected two 30.00 settlements, got %.2f and %.2f", settles[0].Total, settles[1].Total)
	}
	if settles[0].RelatedConsignmentID != "d1" || settles[1].RelatedConsignmentID != "d2" {
		t.Fatalf("settlements linked out of order: %s, %s",
			settles[0].RelatedConsignmentID, settles[1].RelatedConsignmentID)
	}
	if !settles[0].Date.Equal(settles[1].Date) {
		t.Fatalf("bulk settlements must share one timestamp")
	}
}

func TestBulkSettlementOverpaymentRejected(t *testing.T) {
	st := debtState() // total debt 100
	_, err := SettleCustomerDebt(st, testEnv(), "c1", 100.2)
	if !errors.Is(err, ErrOverpayment) {
		t.Fatalf("expected overpayment, got %v", err)
	}
	// Exactly the total plus tolerance is still accepted.
	if _, err := SettleCustomerDebt(st, testEnv(), "c1", 100.05); err != nil {
		t.Fatalf("payment inside tolerance rejected: %v", err)
	}
}

// Cash recognized by settlements must always equal cash recorded against the
// debts they touched.
func TestSettlementCashReconcilesWithPaidAmounts(t *testing.T) {
	st := debtState()
	env := testEnv()

	p1, err := SettleCustomerDebt(st, env, "c1", 45)
	if err != nil {
		t.Fatalf("bulk settlement failed: %v", err)
	}
	p2, err := SettleConsignment(p1.Next, env, "d3", 12)
	if err != nil {
		t.Fatalf("settlement failed: %v", err)
	}

	next := p2.Next
	var settled, paid float64
	for _, tx := range next.Transactions {
		if tx.Type == model.TxConsignmentSettle {
			settled += tx.Total
		}
	}
	for _, c := range next.Consignments {
		paid += c.PaidAmount
	}
	if math.Abs(settled-paid) > 1e-9 {
		t.Fatalf("settlement cash %.4f does not reconcile with paid amounts %.4f", settled, paid)
	}
}

func TestEditConsignmentPatchesOriginatingLedgerEntry(t *testing.T) {
	st := debtState()
	st.Transactions = []model.Transaction{
		{ID: "t1", Type: model.TxConsignmentOut, ProductID: "p1", Quantity: 10,
			PricePerUnit: 3, RelatedConsignmentID: "d1"},
	}
	env := testEnv()

	next, err := EditConsignment(st, env, "d1", ConsignmentEdit{
		ProductName:   "Rice (corrected)",
		TotalExpected: 40,
		PaidAmount:    0,
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	c := next.ConsignmentByID("d1")
	if c.TotalExpected != 40 || c.ProductName != "Rice (corrected)" {
		t.Fatalf("edit not applied: %+v", c)
	}
	if tx := next.TransactionByID("t1"); tx.PricePerUnit != 4 {
		t.Fatalf("expected patched per-unit price 4, got %.2f", tx.PricePerUnit)
	}
	// A record correction must not fabricate a cash event.
	if n := countTx(next, model.TxConsignmentSettle); n != 0 {
		t.Fatalf("edit emitted %d settlement transactions", n)
	}
}

func TestEditConsignmentRecomputesStatus(t *testing.T) {
	st := debtState()
	env := testEnv()

	next, err := EditConsignment(st, env, "d1", ConsignmentEdit{
		ProductName:   "Rice",
		TotalExpected: 30,
		PaidAmount:    30,
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if c := next.ConsignmentByID("d1"); c.Status != model.ConsignmentPaid {
		t.Fatalf("expected PAID after edit, got %s", c.Status)
	}

	if _, err := EditConsignment(st, env, "d1", ConsignmentEdit{TotalExpected: -1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error on negative amount, got %v", err)
	}
}
