package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentAccess_ReadsDuringWrites(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	projects := NewSQLiteProjectRepo(database)
	phases := NewSQLitePhaseRepo(database)
	tasks := NewSQLiteTaskRepo(database)

	proj := testutil.NewTestProject("ReadWrite")
	require.NoError(t, projects.Create(ctx, proj))
	phase := testutil.NewTestPhase(proj.ID, "Build", testutil.Date(2025, 1, 1), testutil.Date(2025, 3, 1))
	require.NoError(t, phases.Create(ctx, phase))

	const total = 20
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			task := testutil.NewTestTask(phase, fmt.Sprintf("Task-%d", i), testutil.WithImages("shot.png"))
			if err := tasks.Create(ctx, task); err != nil {
				t.Errorf("writer: create task %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				list, err := tasks.ListByProject(ctx, proj.ID)
				if err != nil {
					t.Errorf("reader %d: list tasks: %v", reader, err)
					return
				}
				for _, task := range list {
					if task.ID == "" || task.PhaseID != phase.ID {
						t.Errorf("reader %d: half-written task %+v", reader, task)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	list, err := tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, total)
	for _, task := range list {
		assert.Equal(t, []string{"shot.png"}, task.Images)
	}
}

func TestConcurrentAccess_StatusUpdates(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	projects := NewSQLiteProjectRepo(database)
	phases := NewSQLitePhaseRepo(database)
	tasks := NewSQLiteTaskRepo(database)

	proj := testutil.NewTestProject("Updates")
	require.NoError(t, projects.Create(ctx, proj))
	phase := testutil.NewTestPhase(proj.ID, "Build", testutil.Date(2025, 1, 1), testutil.Date(2025, 3, 1))
	require.NoError(t, phases.Create(ctx, phase))

	const total = 12
	ids := make([]string, total)
	for i := range ids {
		task := testutil.NewTestTask(phase, fmt.Sprintf("Task-%d", i))
		require.NoError(t, tasks.Create(ctx, task))
		ids[i] = task.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := tasks.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
				t.Errorf("update %s: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	n, err := tasks.CountByStatus(ctx, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, total, n)
	n, err = tasks.CountByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	assert.Zero(t, n)
}
