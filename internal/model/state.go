package model

// Settings holds operator-tunable application settings persisted with the state.
type Settings struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	APIKey       string `json:"api_key,omitempty"`
	LastSyncDate string `json:"last_sync_date,omitempty"`
}

// AppState is the aggregate root: everything the till knows, as one value.
// Every mutating operation produces a complete new AppState; callers never
// patch fields in place.
type AppState struct {
	Users        []User        `json:"users"`
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
	Consignments []Consignment `json:"consignments"`
	Customers    []Customer    `json:"customers"`
	Categories   []string      `json:"categories"`
	Logs         []LogEntry    `json:"logs"`
	Settings     Settings      `json:"settings"`
}

// Clone returns a deep copy. Slices are re-allocated; Consignment carries the
// only pointer field (DateSettled) and copies it itself.
func (s AppState) Clone() AppState {
	out := s
	out.Users = append([]User(nil), s.Users...)
	out.Products = append([]Product(nil), s.Products...)
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	out.Consignments = make([]Consignment, len(s.Consignments))
	for i, c := range s.Consignments {
		out.Consignments[i] = c.Clone()
	}
	out.Customers = append([]Customer(nil), s.Customers...)
	out.Categories = append([]string(nil), s.Categories...)
	out.Logs = append([]LogEntry(nil), s.Logs...)
	return out
}

// ProductByID returns a pointer into the state's own slice, or nil.
func (s *AppState) ProductByID(id string) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// ConsignmentByID returns a pointer into the state's own slice, or nil.
func (s *AppState) ConsignmentByID(id string) *Consignment {
	for i := range s.Consignments {
		if s.Consignments[i].ID == id {
			return &s.Consignments[i]
		}
	}
	return nil
}

// CustomerByID returns a pointer into the state's own slice, or nil.
func (s *AppState) CustomerByID(id string) *Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return &s.Customers[i]
		}
	}
	return nil
}

// TransactionByID returns a pointer into the state's own slice, or nil.
func (s *AppState) TransactionByID(id string) *Transaction {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return &s.Transactions[i]
		}
	}
	return nil
}
