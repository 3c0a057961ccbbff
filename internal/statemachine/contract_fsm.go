package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/obrafin-api/internal/models"
)

// ContractFSM wraps a contract with its state machine
type ContractFSM struct {
	contract *models.Contract
	fsm      *fsm.FSM
}

// ContractEvents lists the events a contract accepts.
var ContractEvents = []string{"sign", "complete", "terminate", "reopen"}

// NewContractFSM creates a new contract state machine
func NewContractFSM(contract *models.Contract) *ContractFSM {
	cfsm := &ContractFSM{contract: contract}

	cfsm.fsm = fsm.NewFSM(
		contract.Status,
		fsm.Events{
			// draft → signed
			{Name: "sign", Src: []string{models.ContractStatusDraft}, Dst: models.ContractStatusSigned},

			// signed → completed
			{Name: "complete", Src: []string{models.ContractStatusSigned}, Dst: models.ContractStatusCompleted},

			// draft/signed → terminated
			{Name: "terminate", Src: []string{models.ContractStatusDraft, models.ContractStatusSigned}, Dst: models.ContractStatusTerminated},

			// completed/terminated → signed
			{Name: "reopen", Src: []string{models.ContractStatusCompleted, models.ContractStatusTerminated}, Dst: models.ContractStatusSigned},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// Fire applies a named event after checking the contract's own guards.
func (c *ContractFSM) Fire(ctx context.Context, event string) error {
	var allowed bool
	switch event {
	case "sign":
		allowed = c.contract.MaySign()
	case "complete":
		allowed = c.contract.MayComplete()
	case "terminate":
		allowed = c.contract.MayTerminate()
	case "reopen":
		allowed = c.contract.MayReopen()
	default:
		return fmt.Errorf("unknown contract event: %q", event)
	}
	if !allowed {
		return fmt.Errorf("contract cannot %s in current state: %s", event, c.contract.Status)
	}

	if err := c.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s contract: %w", event, err)
	}

	c.contract.Status = c.fsm.Current()
	return nil
}

// Current returns the current state
func (c *ContractFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *ContractFSM) Can(event string) bool {
	return c.fsm.Can(event)
}
