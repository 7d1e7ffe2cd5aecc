package engine

import (
	"fmt"
	"sort"

	"go-almacen-pos/internal/model"
)

// SettleConsignment applies a payment to one consignment and proposes the
// transition. The payment must stay within the epsilon-bounded remaining debt.
// This path closes the debt at SinglePaidThreshold, which differs from the
// bulk path's PaidEpsilon; see the constant docs.
func SettleConsignment(st model.AppState, env Env, consignmentID string, amount float64) (*Proposal, error) {
	if amount <= 0 {
		return nil, validationf("payment amount must be greater than 0")
	}

	next := st.Clone()
	consignment := next.ConsignmentByID(consignmentID)
	if consignment == nil {
		return nil, &NotFoundError{Kind: "consignment", ID: consignmentID}
	}

	remaining := consignment.Remaining()
	if amount > remaining+PaidEpsilon {
		return nil, &OverpaymentError{Remaining: remaining, Payment: amount}
	}

	now := env.Now()
	consignment.PaidAmount += amount
	newRemaining := consignment.TotalExpected - consignment.PaidAmount
	fullyPaid := newRemaining < SinglePaidThreshold
	if fullyPaid {
		consignment.Status = model.ConsignmentPaid
		consignment.DateSettled = &now
	} else {
		consignment.Status = model.ConsignmentPending
		consignment.DateSettled = nil
	}

	txID := env.NewID()
	note := fmt.Sprintf("Partial payment (%s)", consignment.ProductName)
	action := "SETTLE_PARTIAL"
	if fullyPaid {
		note = fmt.Sprintf("Final settlement (%s)", consignment.ProductName)
		action = "SETTLE_FULL"
	}
	next.Transactions = append(next.Transactions, model.Transaction{
		ID:                   txID,
		Type:                 model.TxConsignmentSettle,
		ProductID:            consignment.ProductID,
		Total:                amount,
		Date:                 now,
		CustomerID:           consignment.CustomerID,
		CustomerName:         consignment.CustomerName,
		Note:                 note,
		RelatedConsignmentID: consignment.ID,
	})

	appendLog(&next, env, now, action,
		fmt.Sprintf("Payment of %.2f on debt of %s", amount, consignment.CustomerName))

	itemLabel := fmt.Sprintf("%s (partial payment)", consignment.ProductName)
	title := "PAYMENT RECEIPT"
	notes := fmt.Sprintf("Remaining balance: %.2f", newRemaining)
	if fullyPaid {
		itemLabel = fmt.Sprintf("%s (final balance)", consignment.ProductName)
		title = "SETTLEMENT RECEIPT"
		notes = "The debt has been paid in full."
	}

	customerCI := ""
	if c := next.CustomerByID(consignment.CustomerID); c != nil {
		customerCI = c.CI
	}

	receipt := model.Receipt{
		Kind:         model.ReceiptSettlement,
		Title:        title,
		Date:         now,
		ID:           txID,
		CustomerName: consignment.CustomerName,
		CustomerCI:   customerCI,
		Items: []model.ReceiptItem{
			{Name: itemLabel, Qty: 1, Price: amount, Total: amount},
		},
		TotalAmount: amount,
		Notes:       notes,
	}

	return &Proposal{Next: next, Receipt: receipt}, nil
}

// SettleCustomerDebt distributes one payment across all of a customer's
// pending consignments, oldest debt first. Allocation is greedy: each debt
// takes min(its remaining balance, money left) until the leftover drops under
// DistributionCutoff. One settlement transaction per touched consignment, all
// on one timestamp, one audit entry.
func SettleCustomerDebt(st model.AppState, env Env, customerID string, amount float64) (*Proposal, error) {
	if amount <= 0 {
		return nil, validationf("payment amount must be greater than 0")
	}

	next := st.Clone()
	customer := next.CustomerByID(customerID)
	if customer == nil {
		return nil, &NotFoundError{Kind: "customer", ID: customerID}
	}

	var pending []*model.Consignment
	for i := range next.Consignments {
		c := &next.Consignments[i]
		if c.CustomerID == customerID && c.Status == model.ConsignmentPending {
			pending = append(pending, c)
		}
	}
	// Oldest first; ties keep collection order.
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DateCreated.Before(pending[j].DateCreated)
	})

	totalDebt := 0.0
	for _, c := range pending {
		totalDebt += c.Remaining()
	}
	if amount > totalDebt+PaidEpsilon {
		return nil, &OverpaymentError{Remaining: totalDebt, Payment: amount}
	}

	now := env.Now()
	moneyLeft := amount
	items := make([]model.ReceiptItem, 0, len(pending))

	for _, c := range pending {
		if moneyLeft <= DistributionCutoff {
			break
		}
		payment := c.Remaining()
		if moneyLeft < payment {
			payment = moneyLeft
		}

		c.PaidAmount += payment
		fullyPaid := c.TotalExpected-c.PaidAmount < PaidEpsilon
		if fullyPaid {
			c.Status = model.ConsignmentPaid
			c.DateSettled = &now
		} else {
			c.Status = model.ConsignmentPending
			c.DateSettled = nil
		}

		note := fmt.Sprintf("Bulk partial payment (%s)", c.ProductName)
		label := fmt.Sprintf("%s (partial)", c.ProductName)
		if fullyPaid {
			note = fmt.Sprintf("Bulk settlement (%s)", c.ProductName)
			label = fmt.Sprintf("%s (paid)", c.ProductName)
		}
		next.Transactions = append(next.Transactions, model.Transaction{
			ID:                   env.NewID(),
			Type:                 model.TxConsignmentSettle,
			ProductID:            c.ProductID,
			Total:                payment,
			Date:                 now,
			CustomerID:           c.CustomerID,
			CustomerName:         c.CustomerName,
			Note:                 note,
			RelatedConsignmentID: c.ID,
		})
		items = append(items, model.ReceiptItem{Name: label, Qty: 1, Price: payment, Total: payment})

		moneyLeft -= payment
	}

	appendLog(&next, env, now, "CUSTOMER_PAYMENT",
		fmt.Sprintf("Bulk payment of %.2f from %s", amount, customer.Name))

	receipt := model.Receipt{
		Kind:         model.ReceiptSettlement,
		Title:        "ACCOUNT PAYMENT RECEIPT",
		Date:         now,
		ID:           env.NewID(),
		CustomerName: customer.Name,
		CustomerCI:   customer.CI,
		Items:        items,
		TotalAmount:  amount,
		Notes:        fmt.Sprintf("New outstanding balance: %.2f", totalDebt-amount),
	}

	return &Proposal{Next: next, Receipt: receipt}, nil
}

// ConsignmentEdit is a manual historical correction by an administrator.
type ConsignmentEdit struct {
	ProductName   string  `json:"product_name"`
	TotalExpected float64 `json:"total_expected"`
	PaidAmount    float64 `json:"paid_amount"`
}

// EditConsignment overwrites a consignment's name and amounts, recomputes its
// status, and patches the originating CONSIGNMENT_OUT entry's PricePerUnit so
// historical unit economics stay consistent (quantity held fixed). This is a
// record correction, not a cash event: no settlement transaction is emitted.
func EditConsignment(st model.AppState, env Env, consignmentID string, edit ConsignmentEdit) (model.AppState, error) {
	if edit.TotalExpected < 0 || edit.PaidAmount < 0 {
		return st, validationf("amounts cannot be negative")
	}

	next := st.Clone()
	consignment := next.ConsignmentByID(consignmentID)
	if consignment == nil {
		return st, &NotFoundError{Kind: "consignment", ID: consignmentID}
	}

	now := env.Now()
	consignment.ProductName = edit.ProductName
	consignment.TotalExpected = edit.TotalExpected
	consignment.PaidAmount = edit.PaidAmount
	if edit.TotalExpected-edit.PaidAmount < PaidEpsilon {
		consignment.Status = model.ConsignmentPaid
		if consignment.DateSettled == nil {
			consignment.DateSettled = &now
		}
	} else {
		consignment.Status = model.ConsignmentPending
		consignment.DateSettled = nil
	}

	for i := range next.Transactions {
		tx := &next.Transactions[i]
		if tx.RelatedConsignmentID == consignmentID && tx.Type == model.TxConsignmentOut && tx.Quantity > 0 {
			tx.PricePerUnit = edit.TotalExpected / float64(tx.Quantity)
		}
	}

	appendLog(&next, env, now, "EDIT_DEBT",
		fmt.Sprintf("Manual debt edit %s: %s - expected %.2f, paid %.2f",
			consignmentID, edit.ProductName, edit.TotalExpected, edit.PaidAmount))
	return next, nil
}
