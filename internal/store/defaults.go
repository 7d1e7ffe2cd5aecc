package store

import "go-almacen-pos/internal/model"

// DefaultState is the factory state: the two stock operator accounts and
// nothing else. Passwords are hashed here, never stored in the clear.
func DefaultState() model.AppState {
	admin := model.User{
		ID:       model.DefaultAdminID,
		Username: "admin",
		Name:     "Head Administrator",
		Role:     model.RoleAdmin,
	}
	seller := model.User{
		ID:       "seller-default",
		Username: "vendedor",
		Name:     "Shift 1 Seller",
		Role:     model.RoleSeller,
	}
	// bcrypt errors only on absurd cost parameters; defaults never fail.
	_ = admin.SetPassword("admin123")
	_ = seller.SetPassword("vend123")

	return model.AppState{
		Users:        []model.User{admin, seller},
		Products:     []model.Product{},
		Transactions: []model.Transaction{},
		Consignments: []model.Consignment{},
		Customers:    []model.Customer{},
		Categories:   []string{},
		Logs:         []model.LogEntry{},
	}
}

// Normalize backfills anything a loaded or imported snapshot is missing, so
// older backups keep working: nil collections become empty and an empty user
// list falls back to the default accounts.
func Normalize(st model.AppState) model.AppState {
	if len(st.Users) == 0 {
		st.Users = DefaultState().Users
	}
	if st.Products == nil {
		st.Products = []model.Product{}
	}
	if st.Transactions == nil {
		st.Transactions = []model.Transaction{}
	}
	if st.Consignments == nil {
		st.Consignments = []model.Consignment{}
	}
	if st.Customers == nil {
		st.Customers = []model.Customer{}
	}
	if st.Categories == nil {
		st.Categories = []string{}
	}
	if st.Logs == nil {
		st.Logs = []model.LogEntry{}
	}
	return st
}
