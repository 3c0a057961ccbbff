package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/obrafin-api/internal/models"
)

// statusEvents maps each project status to the event that reaches it.
var statusEvents = map[string]string{
	models.ProjectStatusActive:    "activate",
	models.ProjectStatusSuspended: "suspend",
	models.ProjectStatusCompleted: "complete",
	models.ProjectStatusCancelled: "cancel",
}

// ProjectFSM wraps a project with its lifecycle machine. Every status can
// reach every other status; a TransitionPolicy may narrow that.
type ProjectFSM struct {
	project *models.Project
	policy  TransitionPolicy
	fsm     *fsm.FSM
}

// NewProjectFSM creates a machine positioned at the project's current status.
// A nil policy allows everything.
func NewProjectFSM(project *models.Project, policy TransitionPolicy) *ProjectFSM {
	if policy == nil {
		policy = AllowAll
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}

	pfsm := &ProjectFSM{project: project, policy: policy}

	events := make(fsm.Events, 0, len(models.ProjectStatuses))
	for _, dst := range models.ProjectStatuses {
		events = append(events, fsm.EventDesc{
			Name: statusEvents[dst],
			Src:  models.ProjectStatuses,
			Dst:  dst,
		})
	}

	pfsm.fsm = fsm.NewFSM(
		project.Status,
		events,
		fsm.Callbacks{},
	)

	return pfsm
}

// TransitionTo moves the project to status. Moving to the current status is a
// no-op.
func (p *ProjectFSM) TransitionTo(ctx context.Context, status string) error {
	event, ok := statusEvents[status]
	if !ok {
		return fmt.Errorf("unknown project status: %q", status)
	}
	if from := p.fsm.Current(); from != status && !p.policy.Allowed(from, status) {
		return fmt.Errorf("project %s -> %s: %w", from, status, ErrTransitionDenied)
	}

	if err := p.fsm.Event(ctx, event); err != nil && !isNoTransition(err) {
		return fmt.Errorf("failed to move project from %s to %s: %w", p.project.Status, status, err)
	}

	p.project.Status = p.fsm.Current()
	return nil
}

// Can reports whether the project may move to status.
func (p *ProjectFSM) Can(status string) bool {
	event, ok := statusEvents[status]
	if !ok {
		return false
	}
	return p.fsm.Can(event) && p.policy.Allowed(p.fsm.Current(), status)
}

// Current returns the current state
func (p *ProjectFSM) Current() string {
	return p.fsm.Current()
}
