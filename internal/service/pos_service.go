package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go-almacen-pos/internal/engine"
	"go-almacen-pos/internal/model"
	"go-almacen-pos/internal/store"
	"go-almacen-pos/internal/ws"
	"go-almacen-pos/pkg/validator"
)

// PosService is the sole mutation entry point for the till state. It holds the
// current AppState value, applies engine transitions under one lock, persists
// the snapshot after every commit, and broadcasts a change event.
//
// Checkouts and settlements run in two phases through a single pending
// proposal slot: propose computes the transition and the receipt, confirm
// commits it, cancel discards it. A second propose while one is pending is
// rejected; the operator must resolve the open one first.
type PosService struct {
	mu      sync.Mutex
	state   model.AppState
	pending *engine.Proposal
	store   store.Store
	hub     *ws.Hub

	// dirty marks that the last snapshot write failed; the in-memory state is
	// ahead of disk until the next successful save.
	dirty bool
}

func NewPosService(st store.Store, hub *ws.Hub) (*PosService, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &PosService{state: state, store: st, hub: hub}, nil
}

func (s *PosService) env(actor string) engine.Env {
	return engine.Env{NewID: s.store.GenerateID, Now: time.Now, Actor: actor}
}

// commit replaces the state, persists the snapshot and broadcasts. Must be
// called with s.mu held. A failed save does not roll the state back: the
// operator keeps working and the error is surfaced as a warning; the write is
// retried wholesale on the next commit because every save rewrites the full
// snapshot.
func (s *PosService) commit(next model.AppState, actor, action, message string) error {
	s.state = next

	if s.hub != nil {
		go s.hub.Publish(ws.Event{Type: "state_update", Action: action, Message: message, User: actor})
	}

	if err := s.store.Save(next); err != nil {
		s.dirty = true
		log.Printf("WARN: snapshot save failed, state is ahead of disk: %v", err)
		return err
	}
	if s.dirty {
		log.Println("Snapshot save recovered, disk is current again")
		s.dirty = false
	}
	return nil
}

// Dirty reports whether the in-memory state is ahead of the last saved
// snapshot.
func (s *PosService) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Snapshot returns a deep copy of the committed state, ignoring any pending
// proposal.
func (s *PosService) Snapshot() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return &engine.ValidationError{
			Msg: fmt.Sprintf("field '%s' failed on rule '%s'", first.FailedField, first.Tag),
		}
	}
	return nil
}

// --- Catalog ---

func (s *PosService) AddProduct(actor string, spec engine.ProductSpec) error {
	if err := validateStruct(&spec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.AddProduct(s.state, s.env(actor), spec)
	if err != nil {
		return err
	}
	return s.commit(next, actor, "product_created", fmt.Sprintf("%s created product %q", actor, spec.Name))
}

func (s *PosService) EditProduct(actor, id string, spec engine.ProductSpec) error {
	if err := validateStruct(&spec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.EditProduct(s.state, s.env(actor), id, spec)
	if err != nil {
		return err
	}
	return s.commit(next, actor, "product_updated", fmt.Sprintf("%s edited product %q", actor, spec.Name))
}

func (s *PosService) AddStock(actor, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.AddStock(s.state, s.env(actor), productID, quantity)
	if err != nil {
		return err
	}
	return s.commit(next, actor, "stock_added", fmt.Sprintf("%s recorded a stock-in of %d units", actor, quantity))
}

func (s *PosService) AddCustomer(actor string, spec engine.CustomerSpec) error {
	if err := validateStruct(&spec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.AddCustomer(s.state, s.env(actor), spec)
	if err != nil {
		return err
	}
	return s.commit(next, actor, "customer_created", fmt.Sprintf("%s registered customer %q", actor, spec.Name))
}

func (s *PosService) EditCustomer(actor, id string, spec engine.CustomerSpec) error {
	if err := validateStruct(&spec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.EditCustomer(s.state, s.env(actor), id, spec)
	if err != nil {
		return err
	}
	return s.commit(next, actor, "customer_updated", fmt.Sprintf("%s edited customer %q", actor, spec.Name))
}

// --- Proposals (two-phase commit) ---

func (s *PosService) ProposeCheckout(actor string, cmd engine.CheckoutCommand) (model.Receipt, error) {
	if err := validateStruct(&cmd); err != nil {
		return model.Receipt{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return model.Receipt{}, engine.ErrProposalPending
	}
	proposal, err := engine.Checkout(s.state, s.env(actor), cmd)
	if err != nil {
		return model.Receipt{}, err
	}
	s.pending = proposal
	return proposal.Receipt, nil
}

func (s *PosService) ProposeSettleConsignment(actor, consignmentID string, amount float64) (model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return model.Receipt{}, engine.ErrProposalPending
	}
	proposal, err := engine.SettleConsignment(s.state, s.env(actor), consignmentID, amount)
	if err != nil {
		return model.Receipt{}, err
	}
	s.pending = proposal
	return proposal.Receipt, nil
}

func (s *PosService) ProposeSettleCustomerDebt(actor, customerID string, amount float64) (model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return model.Receipt{}, engine.ErrProposalPending
	}
	proposal, err := engine.SettleCustomerDebt(s.state, s.env(actor), customerID, amount)
	if err != nil {
		return model.Receipt{}, err
	}
	s.pending = proposal
	return proposal.Receipt, nil
}

// PendingReceipt returns the receipt under review, if a proposal is open.
func (s *PosService) PendingReceipt() (model.Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return model.Receipt{}, false
	}
	return s.pending.Receipt, true
}

// ReceiptEdit changes the cosmetic parts of a pending receipt. The underlying
// transition is financial fact and stays untouched.
type ReceiptEdit struct {
	Title        *string    `json:"title"`
	CustomerName *string    `json:"customer_name"`
	Notes        *string    `json:"notes"`
	Date         *time.Time `json:"date"`
}

func (s *PosService) EditPendingReceipt(edit ReceiptEdit) (model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return model.Receipt{}, &engine.NotFoundError{Kind: "proposal", ID: "pending"}
	}
	if edit.Title != nil {
		s.pending.Receipt.Title = *edit.Title
	}
	if edit.CustomerName != nil {
		s.pending.Receipt.CustomerName = *edit.CustomerName
	}
	if edit.Notes != nil {
		s.pending.Receipt.Notes = *edit.Notes
	}
	if edit.Date != nil {
		s.pending.Receipt.Date = *edit.Date
	}
	return s.pending.Receipt, nil
}

// ConfirmPending commits the open proposal atomically and returns the final
// receipt for printing.
func (s *PosService) ConfirmPending(actor string) (model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return model.Receipt{}, &engine.NotFoundError{Kind: "proposal", ID: "pending"}
	}
	receipt := s.pending.Receipt
	next := s.pending.Next
	s.pending = nil
	err := s.commit(next, actor, "proposal_committed",
		fmt.Sprintf("%s confirmed a %s of %.2f", actor, receipt.Kind, receipt.TotalAmount))
	return receipt, err
}

// CancelPending discards the open proposal with zero effect on state.
func (s *PosService) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// --- Debts ---

func (s *PosService) EditConsignment(actor, id string, edit engine.ConsignmentEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.EditConsignment(s.state, s.env(actor), id, edit)
	if err != nil {
		return err
	}
	return s.commit(next, actor, "debt_edited", fmt.Sprintf("%s manually edited a debt record", actor))
}

// --- Reversal ---

func (s *PosService) ReverseTransaction(actor, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.ReverseTransaction(s.state, s.env(actor), transactionID)
	if err != nil {
		return err
	}
	return s.commit(next, actor, "transaction_reversed", fmt.Sprintf("%s reversed a transaction", actor))
}

// --- Users ---

func (s *PosService) CreateUser(actor, username, name, password string, role model.UserRole) error {
	if strings.TrimSpace(password) == "" {
		return &engine.ValidationError{Msg: "password is required"}
	}
	var u model.User
	if err := u.SetPassword(password); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.CreateUser(s.state, s.env(actor), engine.UserSpec{
		Username: username, Name: name, PasswordHash: u.Password, Role: role,
	})
	if err != nil {
		return err
	}
	return s.commit(next, actor, "user_created", fmt.Sprintf("%s created user %q", actor, username))
}

func (s *PosService) UpdateUser(actor, id, name, password string, role model.UserRole) error {
	hash := ""
	if strings.TrimSpace(password) != "" {
		var u model.User
		if err := u.SetPassword(password); err != nil {
			return err
		}
		hash = u.Password
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.UpdateUser(s.state, s.env(actor), id, engine.UserSpec{
		Name: name, PasswordHash: hash, Role: role,
	})
	if err != nil {
		return err
	}
	return s.commit(next, actor, "user_updated", fmt.Sprintf("%s updated a user account", actor))
}

func (s *PosService) DeleteUser(actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := engine.DeleteUser(s.state, s.env(actor), id)
	if err != nil {
		return err
	}
	return s.commit(next, actor, "user_deleted", fmt.Sprintf("%s deleted a user account", actor))
}

// UserByUsername matches case-insensitively.
func (s *PosService) UserByUsername(username string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.state.Users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *PosService) UserByID(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.state.Users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// --- Reports ---

func (s *PosService) DailyReport(actor, day string) (model.DailyStats, model.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.DailyReport(s.state, s.env(actor), day)
}

func (s *PosService) Dashboard() engine.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Dashboard(s.state)
}

func (s *PosService) SalesByDay() []engine.SalesPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.SalesByDay(s.state)
}

func (s *PosService) DebtsByCustomer() []engine.CustomerDebt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.DebtsByCustomer(s.state)
}

// --- Backup ---

func (s *PosService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.ExportState(s.state)
}

// Import validates and fully replaces the state. Any open proposal is
// discarded: it was computed against the replaced state.
func (s *PosService) Import(actor string, raw []byte) error {
	imported, err := engine.ImportState(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	return s.commit(store.Normalize(imported), actor, "state_imported", fmt.Sprintf("%s restored a backup", actor))
}

// FactoryReset wipes everything back to defaults.
func (s *PosService) FactoryReset(actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defaults, err := s.store.Clear()
	if err != nil {
		return err
	}
	s.pending = nil
	s.state = defaults
	if s.hub != nil {
		go s.hub.Publish(ws.Event{Type: "state_update", Action: "factory_reset", Message: "Application reset to factory state", User: actor})
	}
	s.dirty = false
	return nil
}

// IsPersistenceWarning reports whether err means the mutation succeeded but
// the snapshot write failed (degraded, unsaved state).
func IsPersistenceWarning(err error) bool {
	return err != nil && errors.Is(err, store.ErrPersistence)
}
