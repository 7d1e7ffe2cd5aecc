package engine

import (
	"fmt"
	"time"

	"go-almacen-pos/internal/model"
)

// testEnv returns a deterministic Env: sequential IDs and a frozen clock.
func testEnv() Env {
	n := 0
	return Env{
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Now:   func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local) },
		Actor: "admin",
	}
}

func baseState() model.AppState {
	return model.AppState{
		Products: []model.Product{
			{ID: "p1", Name: "Rice 1kg", SKU: "R-001", Stock: 100, BasePrice: 2.5, Category: "Grains"},
			{ID: "p2", Name: "Soda", SKU: "S-001", Stock: 48, BasePrice: 1.0, Category: "Drinks", UnitsPerBox: 24, BoxPrice: 20},
		},
		Customers: []model.Customer{
			{ID: "c1", Name: "Maria Lopez", CI: "12345"},
		},
		Categories: []string{"Drinks", "Grains"},
	}
}

func countTx(st model.AppState, typ model.TransactionType) int {
	n := 0
	for _, tx := range st.Transactions {
		if tx.Type == typ {
			n++
		}
	}
	return n
}
