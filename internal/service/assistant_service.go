package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"go-almacen-pos/internal/model"
)

// AssistantResponse carries either prose or a structured unavailability
// reason. The assistant is purely advisory and never mutates state.
type AssistantResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // "missing_api_key" | "upstream_failure"
	Answer    string `json:"answer,omitempty"`
}

type AssistantService interface {
	Ask(ctx context.Context, query string) (AssistantResponse, error)
}

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

type assistantService struct {
	pos    *PosService
	client *http.Client
}

func NewAssistantService(pos *PosService) AssistantService {
	return &assistantService{
		pos:    pos,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Ask aggregates business metrics from the committed state into a prompt and
// sends it with the operator's question to the upstream model.
func (s *assistantService) Ask(ctx context.Context, query string) (AssistantResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return AssistantResponse{}, fmt.Errorf("query is empty")
	}

	state := s.pos.Snapshot()
	apiKey := state.Settings.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return AssistantResponse{Available: false, Reason: "missing_api_key"}, nil
	}

	prompt := buildBusinessPrompt(state, query)

	body, _ := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiEndpoint+"?key="+apiKey, bytes.NewReader(body))
	if err != nil {
		return AssistantResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return AssistantResponse{Available: false, Reason: "upstream_failure"}, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return AssistantResponse{Available: false, Reason: "upstream_failure"}, nil
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return AssistantResponse{Available: false, Reason: "upstream_failure"}, nil
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return AssistantResponse{Available: false, Reason: "upstream_failure"}, nil
	}

	return AssistantResponse{Available: true, Answer: parsed.Candidates[0].Content.Parts[0].Text}, nil
}

// buildBusinessPrompt pre-computes the metrics the model needs so it never
// sees raw records, only aggregates.
func buildBusinessPrompt(st model.AppState, query string) string {
	totalStock := 0
	inventoryValue := 0.0
	var lowStock []string
	for _, p := range st.Products {
		totalStock += p.Stock
		inventoryValue += float64(p.Stock) * p.BasePrice
		if p.Stock < 5 {
			lowStock = append(lowStock, fmt.Sprintf("%s (%d)", p.Name, p.Stock))
		}
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	sales30 := 0.0
	salesByProduct := map[string]int{}
	for _, tx := range st.Transactions {
		if tx.Type != model.TxSale || tx.Date.Before(thirtyDaysAgo) {
			continue
		}
		sales30 += tx.Total
		salesByProduct[tx.ProductID] += tx.Quantity
	}

	type productQty struct {
		id  string
		qty int
	}
	ranked := make([]productQty, 0, len(salesByProduct))
	for id, qty := range salesByProduct {
		ranked = append(ranked, productQty{id, qty})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].qty > ranked[j].qty })
	var topProducts []string
	for i, r := range ranked {
		if i == 5 {
			break
		}
		if p := st.ProductByID(r.id); p != nil {
			topProducts = append(topProducts, fmt.Sprintf("%s (%d un.)", p.Name, r.qty))
		}
	}

	pendingDebt := 0.0
	pendingCount := 0
	for _, c := range st.Consignments {
		if c.Status == model.ConsignmentPending {
			pendingDebt += c.Remaining()
			pendingCount++
		}
	}

	return fmt.Sprintf(`You are the business assistant of a small retail store's point-of-sale system.
Answer in the operator's language, briefly and concretely, using only the data below.

BUSINESS SNAPSHOT
- Products: %d (total stock %d units, inventory value %.2f)
- Low stock (<5 units): %s
- Sales last 30 days: %.2f
- Top sellers (30 days): %s
- Open credit debts: %d records, %.2f outstanding
- Registered customers: %d

QUESTION: %s`,
		len(st.Products), totalStock, inventoryValue,
		strings.Join(lowStock, ", "),
		sales30,
		strings.Join(topProducts, ", "),
		pendingCount, pendingDebt,
		len(st.Customers),
		query)
}
