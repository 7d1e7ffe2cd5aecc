// Package store is the persistence collaborator: it loads and saves the whole
// AppState aggregate as a snapshot. The core calls Load once at startup, Save
// after every commit, and Clear on factory reset; it never cares what the
// storage medium is.
package store

import (
	"errors"
	"fmt"

	"go-almacen-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPersistence = errors.New("persistence failure")

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

type Store interface {
	Load() (model.AppState, error)
	Save(model.AppState) error
	Clear() (model.AppState, error)
	GenerateID() string
}

// categoryRow and the settings row are storage details; the aggregate keeps
// categories as a plain sorted string slice.
type categoryRow struct {
	Name string `gorm:"primaryKey"`
}

func (categoryRow) TableName() string { return "categories" }

type gormStore struct {
	db *gorm.DB
}

// New migrates the snapshot tables and returns a Store over db.
func New(db *gorm.DB) (Store, error) {
	err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Transaction{},
		&model.Consignment{},
		&model.Customer{},
		&model.LogEntry{},
		&model.Settings{},
		&categoryRow{},
	)
	if err != nil {
		return nil, &PersistenceError{Op: "migrate", Err: err}
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) GenerateID() string {
	return uuid.NewString()
}

// Load reads the full aggregate. Row order follows insertion order, which
// Save writes in slice order, so ledger commit order survives the round trip.
func (s *gormStore) Load() (model.AppState, error) {
	var st model.AppState
	steps := []func() error{
		func() error { return s.db.Find(&st.Users).Error },
		func() error { return s.db.Find(&st.Products).Error },
		func() error { return s.db.Find(&st.Transactions).Error },
		func() error { return s.db.Find(&st.Consignments).Error },
		func() error { return s.db.Find(&st.Customers).Error },
		func() error { return s.db.Find(&st.Logs).Error },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return model.AppState{}, &PersistenceError{Op: "load", Err: err}
		}
	}

	var rows []categoryRow
	if err := s.db.Order("name").Find(&rows).Error; err != nil {
		return model.AppState{}, &PersistenceError{Op: "load", Err: err}
	}
	for _, row := range rows {
		st.Categories = append(st.Categories, row.Name)
	}

	if err := s.db.First(&st.Settings).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AppState{}, &PersistenceError{Op: "load", Err: err}
	}

	return Normalize(st), nil
}

// Save rewrites the snapshot in one transaction: either the whole new
// aggregate lands or nothing changes on disk.
func (s *gormStore) Save(st model.AppState) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []interface{}{
			&model.User{}, &model.Product{}, &model.Transaction{},
			&model.Consignment{}, &model.Customer{}, &model.LogEntry{},
			&model.Settings{}, &categoryRow{},
		} {
			if err := wipe.Delete(m).Error; err != nil {
				return err
			}
		}

		if len(st.Users) > 0 {
			if err := tx.CreateInBatches(st.Users, 100).Error; err != nil {
				return err
			}
		}
		if len(st.Products) > 0 {
			if err := tx.CreateInBatches(st.Products, 100).Error; err != nil {
				return err
			}
		}
		if len(st.Transactions) > 0 {
			if err := tx.CreateInBatches(st.Transactions, 200).Error; err != nil {
				return err
			}
		}
		if len(st.Consignments) > 0 {
			if err := tx.CreateInBatches(st.Consignments, 100).Error; err != nil {
				return err
			}
		}
		if len(st.Customers) > 0 {
			if err := tx.CreateInBatches(st.Customers, 100).Error; err != nil {
				return err
			}
		}
		if len(st.Logs) > 0 {
			if err := tx.CreateInBatches(st.Logs, 200).Error; err != nil {
				return err
			}
		}
		for _, name := range st.Categories {
			if err := tx.Create(&categoryRow{Name: name}).Error; err != nil {
				return err
			}
		}

		settings := st.Settings
		settings.ID = 1
		return tx.Create(&settings).Error
	})
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// Clear wipes the snapshot and returns the factory-default state.
func (s *gormStore) Clear() (model.AppState, error) {
	defaults := DefaultState()
	if err := s.Save(defaults); err != nil {
		return model.AppState{}, err
	}
	return defaults, nil
}
