// Package engine holds the ledger/settlement core: pure state-transition
// functions over model.AppState. Every operation clones the input state,
// applies one complete, consistent change and returns the next state; nothing
// here touches storage, HTTP or the clock directly.
package engine

import (
	"time"

	"go-almacen-pos/internal/model"
)

// Paid-status thresholds. Two different values survive from the accounting
// rules this system replaces: single-consignment settlement closes a debt at
// 0.5 while bulk settlement and manual edits use 0.1. Kept as separate named
// constants pending a ruling from the owner; do not unify silently.
const (
	// PaidEpsilon absorbs floating-point drift when comparing amounts.
	// It is a tolerance, not a business rounding rule.
	PaidEpsilon = 0.1

	// SinglePaidThreshold closes a consignment in the single-settlement path.
	SinglePaidThreshold = 0.5

	// DistributionCutoff stops the bulk allocation loop once the leftover is
	// too small to matter.
	DistributionCutoff = 0.01
)

// Env supplies the non-deterministic inputs of a transition: ID generation,
// the clock, and the acting operator for audit entries. Tests pin all three.
type Env struct {
	NewID func() string
	Now   func() time.Time
	Actor string
}

// Proposal is a computed but uncommitted transition: the full would-be next
// state plus the receipt to review. Confirming swaps Next in; cancelling
// discards it with zero effect.
type Proposal struct {
	Next    model.AppState
	Receipt model.Receipt
}

// appendLog prepends an audit entry (the trail is kept newest-first).
func appendLog(st *model.AppState, env Env, ts time.Time, action, details string) {
	entry := model.LogEntry{
		ID:        env.NewID(),
		Timestamp: ts,
		Action:    action,
		Details:   details,
		User:      env.Actor,
	}
	st.Logs = append([]model.LogEntry{entry}, st.Logs...)
}
