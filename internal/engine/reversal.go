package engine

import (
	"fmt"

	"go-almacen-pos/internal/model"
)

// ReverseTransaction computes and applies the exact inverse of a committed
// transaction, then removes it from the ledger. One-shot and terminal: once
// reversed, the transaction no longer exists, so there is nothing to reverse
// again. Never fails on a transaction that exists; stock is clamped at zero
// instead of going negative.
//
//	SALE               stock += quantity
//	STOCK_IN           stock = max(0, stock - quantity)
//	CONSIGNMENT_OUT    stock += quantity; linked consignment deleted
//	CONSIGNMENT_SETTLE linked paidAmount = max(0, paid - total); status PENDING
func ReverseTransaction(st model.AppState, env Env, transactionID string) (model.AppState, error) {
	next := st.Clone()
	tx := next.TransactionByID(transactionID)
	if tx == nil {
		return st, &NotFoundError{Kind: "transaction", ID: transactionID}
	}
	reversed := *tx

	switch reversed.Type {
	case model.TxSale:
		if p := next.ProductByID(reversed.ProductID); p != nil {
			p.Stock += reversed.Quantity
		}

	case model.TxStockIn:
		if p := next.ProductByID(reversed.ProductID); p != nil {
			p.Stock -= reversed.Quantity
			if p.Stock < 0 {
				p.Stock = 0
			}
		}

	case model.TxConsignmentOut:
		if reversed.RelatedConsignmentID != "" {
			next.Consignments = deleteConsignment(next.Consignments, reversed.RelatedConsignmentID)
		}
		if p := next.ProductByID(reversed.ProductID); p != nil {
			p.Stock += reversed.Quantity
		}

	case model.TxConsignmentSettle:
		if c := next.ConsignmentByID(reversed.RelatedConsignmentID); c != nil {
			c.PaidAmount -= reversed.Total
			if c.PaidAmount < 0 {
				c.PaidAmount = 0
			}
			c.Status = model.ConsignmentPending
			c.DateSettled = nil
		}
	}

	next.Transactions = deleteTransaction(next.Transactions, transactionID)

	appendLog(&next, env, env.Now(), "DELETE_TRANSACTION",
		fmt.Sprintf("Reversed %s of %.2f (user: %s)", reversed.Type, reversed.Total, env.Actor))
	return next, nil
}

func deleteTransaction(txs []model.Transaction, id string) []model.Transaction {
	out := txs[:0]
	for _, t := range txs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func deleteConsignment(cs []model.Consignment, id string) []model.Consignment {
	out := cs[:0]
	for _, c := range cs {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
