package engine

import (
	"errors"
	"testing"

	"go-almacen-pos/internal/model"
)

func TestAddProductRecordsInitialInventory(t *testing.T) {
	st := baseState()
	env := testEnv()

	next, err := AddProduct(st, env, ProductSpec{
		Name:      "Flour 1kg",
		Category:  "Baking",
		BasePrice: 1.8,
		Stock:     40,
	})
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}

	if len(next.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(next.Products))
	}
	p := next.Products[2]
	if p.Stock != 40 || p.Category != "Baking" {
		t.Fatalf("unexpected product: %+v", p)
	}

	tx := next.Transactions[len(next.Transactions)-1]
	if tx.Type != model.TxStockIn || tx.Quantity != 40 || tx.ProductID != p.ID {
		t.Fatalf("initial stock not recorded in the ledger: %+v", tx)
	}
	if tx.Note != "Initial inventory" {
		t.Fatalf("unexpected stock-in note %q", tx.Note)
	}
}

func TestAddProductKeepsCategorySetSorted(t *testing.T) {
	st := baseState() // categories: Drinks, Grains
	env := testEnv()

	next, err := AddProduct(st, env, ProductSpec{Name: "Bread", Category: "Bakery", Stock: 1})
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	want := []string{"Bakery", "Drinks", "Grains"}
	if len(next.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), next.Categories)
	}
	for i, c := range want {
		if next.Categories[i] != c {
			t.Fatalf("categories out of order: %v", next.Categories)
		}
	}

	// Re-adding an existing category must not duplicate it.
	again, err := AddProduct(next, env, ProductSpec{Name: "Cake", Category: "Bakery", Stock: 1})
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	if len(again.Categories) != len(want) {
		t.Fatalf("category duplicated: %v", again.Categories)
	}
}

func TestAddProductRequiresCategoryAndName(t *testing.T) {
	if _, err := AddProduct(baseState(), testEnv(), ProductSpec{Name: "X", Category: "  "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank category, got %v", err)
	}
	if _, err := AddProduct(baseState(), testEnv(), ProductSpec{Name: "", Category: "C"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestEditProductNeverTouchesStock(t *testing.T) {
	st := baseState()
	env := testEnv()

	next, err := EditProduct(st, env, "p1", ProductSpec{
		Name:      "Rice Premium 1kg",
		Category:  "Grains",
		BasePrice: 3.0,
		Stock:     5, // must be ignored
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	p := next.ProductByID("p1")
	if p.Stock != 100 {
		t.Fatalf("edit changed stock: %d", p.Stock)
	}
	if p.Name != "Rice Premium 1kg" || p.BasePrice != 3.0 {
		t.Fatalf("edit not applied: %+v", p)
	}
	if n := countTx(next, model.TxStockIn); n != 0 {
		t.Fatalf("edit emitted %d ledger entries", n)
	}
}

func TestAddStockRequiresPositiveQuantity(t *testing.T) {
	if _, err := AddStock(baseState(), testEnv(), "p1", 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := AddStock(baseState(), testEnv(), "p1", -3); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := AddStock(baseState(), testEnv(), "ghost", 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddStockAppendsLedgerEntry(t *testing.T) {
	next, err := AddStock(baseState(), testEnv(), "p1", 30)
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if got := next.ProductByID("p1").Stock; got != 130 {
		t.Fatalf("expected stock 130, got %d", got)
	}
	tx := next.Transactions[len(next.Transactions)-1]
	if tx.Type != model.TxStockIn || tx.Quantity != 30 || tx.Note != "Restock" {
		t.Fatalf("unexpected restock entry: %+v", tx)
	}
}

func TestCustomerLifecycle(t *testing.T) {
	st := baseState()
	env := testEnv()

	next, err := AddCustomer(st, env, CustomerSpec{Name: "  Pedro Diaz ", CI: "9988"})
	if err != nil {
		t.Fatalf("add customer failed: %v", err)
	}
	c := next.Customers[len(next.Customers)-1]
	if c.Name != "Pedro Diaz" || c.CI != "9988" {
		t.Fatalf("unexpected customer: %+v", c)
	}

	edited, err := EditCustomer(next, env, c.ID, CustomerSpec{Name: "Pedro D.", Phone: "555"})
	if err != nil {
		t.Fatalf("edit customer failed: %v", err)
	}
	got := edited.CustomerByID(c.ID)
	if got.Name != "Pedro D." || got.Phone != "555" {
		t.Fatalf("edit not applied: %+v", got)
	}

	if _, err := AddCustomer(st, env, CustomerSpec{Name: "   "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOperationsAppendAuditTrailNewestFirst(t *testing.T) {
	st := baseState()
	env := testEnv()

	next, err := AddStock(st, env, "p1", 5)
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	next, err = AddCustomer(next, env, CustomerSpec{Name: "Ana"})
	if err != nil {
		t.Fatalf("add customer failed: %v", err)
	}

	if len(next.Logs) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(next.Logs))
	}
	if next.Logs[0].Action != "CREATE_CUSTOMER" || next.Logs[1].Action != "ADD_STOCK" {
		t.Fatalf("trail not newest-first: %s, %s", next.Logs[0].Action, next.Logs[1].Action)
	}
	if next.Logs[0].User != "admin" {
		t.Fatalf("audit entry missing actor: %+v", next.Logs[0])
	}
}
