package engine

import (
	"fmt"

	"go-almacen-pos/internal/model"
)

type SaleUnit string

const (
	UnitSingle SaleUnit = "unit"
	UnitBox    SaleUnit = "box"
)

type CheckoutKind string

const (
	CheckoutSale        CheckoutKind = "SALE"
	CheckoutConsignment CheckoutKind = "CONSIGNMENT"
)

// CartLine is one row of the cart. Price is per sale item: per unit for unit
// lines, per box for box lines.
type CartLine struct {
	ProductID string   `json:"product_id" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required,gt=0"`
	Price     float64  `json:"price" validate:"gte=0"`
	Unit      SaleUnit `json:"unit" validate:"required,oneof=unit box"`
}

type CheckoutCommand struct {
	Kind       CheckoutKind `json:"kind" validate:"required,oneof=SALE CONSIGNMENT"`
	Lines      []CartLine   `json:"lines" validate:"required,min=1,dive"`
	CustomerID string       `json:"customer_id"`
	Note       string       `json:"note"`
}

// WalkInCustomer is the display name recorded on cash sales without a
// registered customer.
const WalkInCustomer = "Walk-in customer"

// Checkout converts a cart into a proposed transition: stock deductions, one
// ledger entry per line, and for credit checkouts one consignment per line.
// All lines share a single timestamp and a single audit entry. Nothing is
// committed; the caller holds the Proposal until the operator confirms.
func Checkout(st model.AppState, env Env, cmd CheckoutCommand) (*Proposal, error) {
	if len(cmd.Lines) == 0 {
		return nil, validationf("cart is empty")
	}

	next := st.Clone()

	var customer *model.Customer
	if cmd.CustomerID != "" {
		customer = next.CustomerByID(cmd.CustomerID)
		if customer == nil {
			return nil, &NotFoundError{Kind: "customer", ID: cmd.CustomerID}
		}
	}
	if cmd.Kind == CheckoutConsignment && customer == nil {
		return nil, validationf("a customer is required for a credit/consignment checkout")
	}

	customerName := WalkInCustomer
	customerCI := ""
	customerID := ""
	if customer != nil {
		customerName = customer.Name
		customerCI = customer.CI
		customerID = customer.ID
	}

	now := env.Now()
	items := make([]model.ReceiptItem, 0, len(cmd.Lines))
	grandTotal := 0.0

	for _, line := range cmd.Lines {
		if line.Quantity <= 0 {
			return nil, validationf("line quantity must be greater than 0")
		}
		product := next.ProductByID(line.ProductID)
		if product == nil {
			return nil, &NotFoundError{Kind: "product", ID: line.ProductID}
		}

		unitsPerPack := 1
		if line.Unit == UnitBox {
			unitsPerPack = product.UnitsPerBox
			if unitsPerPack < 1 {
				unitsPerPack = 1
			}
		}
		unitsToRemove := line.Quantity * unitsPerPack

		// Deducting against the clone catches repeated lines of one product.
		if unitsToRemove > product.Stock {
			return nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   unitsToRemove,
				Available:   product.Stock,
			}
		}
		product.Stock -= unitsToRemove

		lineTotal := float64(line.Quantity) * line.Price
		grandTotal += lineTotal

		itemName := product.Name
		if line.Unit == UnitBox {
			itemName = fmt.Sprintf("%s (box x%d)", product.Name, unitsPerPack)
		}
		items = append(items, model.ReceiptItem{
			Name:  itemName,
			Qty:   line.Quantity,
			Price: line.Price,
			Total: lineTotal,
		})

		if cmd.Kind == CheckoutSale {
			next.Transactions = append(next.Transactions, model.Transaction{
				ID:           env.NewID(),
				Type:         model.TxSale,
				ProductID:    product.ID,
				Quantity:     unitsToRemove,
				PricePerUnit: line.Price / float64(unitsPerPack),
				Total:        lineTotal,
				Date:         now,
				CustomerID:   customerID,
				CustomerName: customerName,
				Note:         fmt.Sprintf("Sale (%s): %d x %s", env.Actor, line.Quantity, itemName),
			})
			continue
		}

		consignment := model.Consignment{
			ID:                 env.NewID(),
			CustomerID:         customer.ID,
			CustomerName:       customer.Name,
			ProductID:          product.ID,
			ProductName:        itemName,
			Quantity:           line.Quantity,
			AgreedPricePerUnit: line.Price,
			TotalExpected:      lineTotal,
			PaidAmount:         0,
			Status:             model.ConsignmentPending,
			DateCreated:        now,
		}
		next.Consignments = append(next.Consignments, consignment)

		// Total stays 0 on the grant: cash is recognized on settlement only.
		next.Transactions = append(next.Transactions, model.Transaction{
			ID:                   env.NewID(),
			Type:                 model.TxConsignmentOut,
			ProductID:            product.ID,
			Quantity:             unitsToRemove,
			PricePerUnit:         line.Price / float64(unitsPerPack),
			Total:                0,
			Date:                 now,
			CustomerID:           customer.ID,
			CustomerName:         customer.Name,
			Note:                 fmt.Sprintf("Credit (%s): %d x %s", env.Actor, line.Quantity, itemName),
			RelatedConsignmentID: consignment.ID,
		})
	}

	action := "SALE"
	details := fmt.Sprintf("Sale of %d items to %s", len(cmd.Lines), customerName)
	if cmd.Kind == CheckoutConsignment {
		action = "CONSIGNMENT_OUT"
		details = fmt.Sprintf("Credit of %d items granted to %s", len(cmd.Lines), customerName)
	}
	if cmd.Note != "" {
		details += " | Note: " + cmd.Note
	}
	appendLog(&next, env, now, action, details)

	receipt := model.Receipt{
		Kind:         model.ReceiptSale,
		Title:        "SALES TICKET",
		Date:         now,
		ID:           env.NewID(),
		CustomerName: customerName,
		CustomerCI:   customerCI,
		Items:        items,
		TotalAmount:  grandTotal,
		Notes:        "No returns accepted after 3 days.",
	}
	if cmd.Kind == CheckoutConsignment {
		receipt.Kind = model.ReceiptConsignment
		receipt.Title = "CREDIT NOTE / DELIVERY SLIP"
		receipt.Notes = "Goods delivered on credit. The customer acknowledges the full debt described."
	}
	if cmd.Note != "" {
		receipt.Notes += "\n\nNOTE: " + cmd.Note
	}

	return &Proposal{Next: next, Receipt: receipt}, nil
}
