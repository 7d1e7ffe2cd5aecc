package engine

import (
	"encoding/json"

	"go-almacen-pos/internal/model"
)

// ImportState parses a full backup document. Import replaces everything, so
// the document must at minimum carry the products and transactions fields
// before any replacement happens; there is no merge.
func ImportState(raw []byte) (model.AppState, error) {
	var probe struct {
		Products     json.RawMessage `json:"products"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return model.AppState{}, &InvalidFormatError{Msg: "backup document is not valid JSON"}
	}
	if probe.Products == nil || probe.Transactions == nil {
		return model.AppState{}, &InvalidFormatError{Msg: "backup document is missing the products or transactions section"}
	}

	var st model.AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		return model.AppState{}, &InvalidFormatError{Msg: "backup document does not match the expected layout"}
	}
	return st, nil
}

// ExportState renders the whole aggregate as one JSON document.
func ExportState(st model.AppState) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}
