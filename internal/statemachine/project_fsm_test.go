package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/obrafin-api/internal/models"
)

func TestProjectFSM_AnyToAny(t *testing.T) {
	ctx := context.Background()

	for _, from := range models.ProjectStatuses {
		for _, to := range models.ProjectStatuses {
			project := &models.Project{Status: from}
			m := NewProjectFSM(project, nil)

			assert.Truef(t, m.Can(to), "%s -> %s", from, to)
			require.NoErrorf(t, m.TransitionTo(ctx, to), "%s -> %s", from, to)
			assert.Equal(t, to, project.Status)
			assert.Equal(t, to, m.Current())
		}
	}
}

func TestProjectFSM_RevertFinishedProject(t *testing.T) {
	ctx := context.Background()
	project := &models.Project{Status: models.ProjectStatusActive}
	m := NewProjectFSM(project, AllowAll)

	require.NoError(t, m.TransitionTo(ctx, models.ProjectStatusCancelled))
	require.NoError(t, m.TransitionTo(ctx, models.ProjectStatusActive))
	require.NoError(t, m.TransitionTo(ctx, models.ProjectStatusCompleted))
	require.NoError(t, m.TransitionTo(ctx, models.ProjectStatusActive))

	assert.Equal(t, models.ProjectStatusActive, project.Status)
}

func TestProjectFSM_EmptyStatusStartsActive(t *testing.T) {
	project := &models.Project{}
	m := NewProjectFSM(project, nil)

	assert.Equal(t, models.ProjectStatusActive, m.Current())
	require.NoError(t, m.TransitionTo(context.Background(), models.ProjectStatusSuspended))
	assert.Equal(t, models.ProjectStatusSuspended, project.Status)
}

func TestProjectFSM_UnknownStatus(t *testing.T) {
	project := &models.Project{Status: models.ProjectStatusActive}
	m := NewProjectFSM(project, nil)

	err := m.TransitionTo(context.Background(), "archived")

	assert.Error(t, err)
	assert.False(t, m.Can("archived"))
	assert.Equal(t, models.ProjectStatusActive, project.Status)
}

func TestProjectFSM_PolicyCanDeny(t *testing.T) {
	policy := Forbid([2]string{models.ProjectStatusCancelled, models.ProjectStatusActive})
	project := &models.Project{Status: models.ProjectStatusCancelled}
	m := NewProjectFSM(project, policy)

	assert.False(t, m.Can(models.ProjectStatusActive))
	err := m.TransitionTo(context.Background(), models.ProjectStatusActive)

	assert.ErrorIs(t, err, ErrTransitionDenied)
	assert.Equal(t, models.ProjectStatusCancelled, project.Status)

	require.NoError(t, m.TransitionTo(context.Background(), models.ProjectStatusSuspended))
	assert.Equal(t, models.ProjectStatusSuspended, project.Status)
}
