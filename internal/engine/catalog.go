package engine

import (
	"fmt"
	"sort"
	"strings"

	"go-almacen-pos/internal/model"
)

// ProductSpec carries the operator-editable product fields.
type ProductSpec struct {
	Name        string  `json:"name" validate:"required"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	BasePrice   float64 `json:"base_price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"` // initial stock, creation only
	Image       string  `json:"image"`
	UnitsPerBox int     `json:"units_per_box" validate:"gte=0"`
	BoxPrice    float64 `json:"box_price" validate:"gte=0"`
}

// AddProduct creates a product and records its initial quantity as a STOCK_IN
// ledger entry. The category must be non-empty; new categories join the sorted
// category set.
func AddProduct(st model.AppState, env Env, spec ProductSpec) (model.AppState, error) {
	category := strings.TrimSpace(spec.Category)
	if category == "" {
		return st, validationf("category is required")
	}
	if strings.TrimSpace(spec.Name) == "" {
		return st, validationf("product name is required")
	}
	if spec.Stock < 0 {
		return st, validationf("initial stock cannot be negative")
	}

	next := st.Clone()
	next.Categories = addCategory(next.Categories, category)

	now := env.Now()
	product := model.Product{
		ID:          env.NewID(),
		Name:        strings.TrimSpace(spec.Name),
		SKU:         spec.SKU,
		Stock:       spec.Stock,
		BasePrice:   spec.BasePrice,
		Category:    category,
		Image:       spec.Image,
		UnitsPerBox: spec.UnitsPerBox,
		BoxPrice:    spec.BoxPrice,
	}
	next.Products = append(next.Products, product)

	next.Transactions = append(next.Transactions, model.Transaction{
		ID:        env.NewID(),
		Type:      model.TxStockIn,
		ProductID: product.ID,
		Quantity:  product.Stock,
		Date:      now,
		Note:      "Initial inventory",
	})

	appendLog(&next, env, now, "CREATE_PRODUCT",
		fmt.Sprintf("Created product %q with initial stock %d", product.Name, product.Stock))
	return next, nil
}

// EditProduct updates display and pricing fields. Stock is deliberately not
// touchable here: stock only moves through ledger transactions.
func EditProduct(st model.AppState, env Env, id string, spec ProductSpec) (model.AppState, error) {
	category := strings.TrimSpace(spec.Category)
	if category == "" {
		return st, validationf("category is required")
	}
	if strings.TrimSpace(spec.Name) == "" {
		return st, validationf("product name is required")
	}

	next := st.Clone()
	product := next.ProductByID(id)
	if product == nil {
		return st, &NotFoundError{Kind: "product", ID: id}
	}

	product.Name = strings.TrimSpace(spec.Name)
	product.SKU = spec.SKU
	product.BasePrice = spec.BasePrice
	product.Category = category
	if spec.Image != "" {
		product.Image = spec.Image
	}
	product.UnitsPerBox = spec.UnitsPerBox
	product.BoxPrice = spec.BoxPrice

	next.Categories = addCategory(next.Categories, category)

	appendLog(&next, env, env.Now(), "EDIT_PRODUCT",
		fmt.Sprintf("Edited product %q", product.Name))
	return next, nil
}

// AddStock records a restock: stock increment plus a STOCK_IN ledger entry.
func AddStock(st model.AppState, env Env, productID string, quantity int) (model.AppState, error) {
	if quantity <= 0 {
		return st, validationf("restock quantity must be greater than 0")
	}

	next := st.Clone()
	product := next.ProductByID(productID)
	if product == nil {
		return st, &NotFoundError{Kind: "product", ID: productID}
	}

	now := env.Now()
	product.Stock += quantity
	next.Transactions = append(next.Transactions, model.Transaction{
		ID:        env.NewID(),
		Type:      model.TxStockIn,
		ProductID: product.ID,
		Quantity:  quantity,
		Date:      now,
		Note:      "Restock",
	})

	appendLog(&next, env, now, "ADD_STOCK",
		fmt.Sprintf("Stock-in of %d units for %q", quantity, product.Name))
	return next, nil
}

// CustomerSpec carries the operator-editable customer fields.
type CustomerSpec struct {
	Name  string `json:"name" validate:"required"`
	CI    string `json:"ci"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
	Notes string `json:"notes"`
}

func AddCustomer(st model.AppState, env Env, spec CustomerSpec) (model.AppState, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return st, validationf("customer name is required")
	}

	next := st.Clone()
	now := env.Now()
	customer := model.Customer{
		ID:          env.NewID(),
		Name:        strings.TrimSpace(spec.Name),
		CI:          spec.CI,
		Phone:       spec.Phone,
		Email:       spec.Email,
		Notes:       spec.Notes,
		DateCreated: now,
	}
	next.Customers = append(next.Customers, customer)

	appendLog(&next, env, now, "CREATE_CUSTOMER",
		fmt.Sprintf("Registered customer %q", customer.Name))
	return next, nil
}

func EditCustomer(st model.AppState, env Env, id string, spec CustomerSpec) (model.AppState, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return st, validationf("customer name is required")
	}

	next := st.Clone()
	customer := next.CustomerByID(id)
	if customer == nil {
		return st, &NotFoundError{Kind: "customer", ID: id}
	}

	customer.Name = strings.TrimSpace(spec.Name)
	customer.CI = spec.CI
	customer.Phone = spec.Phone
	customer.Email = spec.Email
	customer.Notes = spec.Notes

	appendLog(&next, env, env.Now(), "EDIT_CUSTOMER",
		fmt.Sprintf("Edited customer %q", customer.Name))
	return next, nil
}

func addCategory(categories []string, category string) []string {
	for _, c := range categories {
		if c == category {
			return categories
		}
	}
	categories = append(categories, category)
	sort.Strings(categories)
	return categories
}
