package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/obrafin-api/internal/models"
)

// TransactionFSM wraps a ledger transaction with its approval machine
type TransactionFSM struct {
	tx  *models.Transaction
	fsm *fsm.FSM
}

// NewTransactionFSM creates a new transaction state machine
func NewTransactionFSM(tx *models.Transaction) *TransactionFSM {
	tfsm := &TransactionFSM{tx: tx}

	tfsm.fsm = fsm.NewFSM(
		tx.Status,
		fsm.Events{
			// draft/rejected → submitted
			{Name: "submit", Src: []string{models.TransactionStatusDraft, models.TransactionStatusRejected}, Dst: models.TransactionStatusSubmitted},

			// draft/submitted → paid
			{Name: "approve", Src: []string{models.TransactionStatusDraft, models.TransactionStatusSubmitted}, Dst: models.TransactionStatusPaid},

			// submitted → rejected
			{Name: "reject", Src: []string{models.TransactionStatusSubmitted}, Dst: models.TransactionStatusRejected},

			// paid → submitted
			{Name: "undo", Src: []string{models.TransactionStatusPaid}, Dst: models.TransactionStatusSubmitted},
		},
		fsm.Callbacks{},
	)

	return tfsm
}

func (t *TransactionFSM) fire(ctx context.Context, event string, allowed bool) error {
	if !allowed {
		return fmt.Errorf("transaction cannot %s in current state: %s", event, t.tx.Status)
	}
	if err := t.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s transaction: %w", event, err)
	}
	t.tx.Status = t.fsm.Current()
	return nil
}

// Submit sends the transaction for approval
func (t *TransactionFSM) Submit(ctx context.Context) error {
	return t.fire(ctx, "submit", t.tx.MaySubmit())
}

// Approve marks the transaction paid
func (t *TransactionFSM) Approve(ctx context.Context) error {
	return t.fire(ctx, "approve", t.tx.MayApprove())
}

// Reject sends a submitted transaction back
func (t *TransactionFSM) Reject(ctx context.Context) error {
	return t.fire(ctx, "reject", t.tx.MayReject())
}

// Undo reverts a paid transaction to submitted
func (t *TransactionFSM) Undo(ctx context.Context) error {
	return t.fire(ctx, "undo", t.tx.MayUndo())
}

// Current returns the current state
func (t *TransactionFSM) Current() string {
	return t.fsm.Current()
}

// Can checks if a transition is possible
func (t *TransactionFSM) Can(event string) bool {
	return t.fsm.Can(event)
}
