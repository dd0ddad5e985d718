package taskd_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/broadleaf/taskd/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

// TestCrossUserIsolation registers two users and verifies that every
// operation one user attempts against the other's task reports 404, exactly
// as if the task did not exist.
func TestCrossUserIsolation(t *testing.T) {
	ctx := context.Background()
	client := setupServer(t)

	alice := registerAndLogin(t, client, aliceEmail, alicePassword, aliceName)
	bob := registerAndLogin(t, client, bobEmail, bobPassword, bobName)

	task, err := alice.CreateTask(ctx, tasksdk.TaskRequest{Title: "Alice's secret plan"})
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		_, err := bob.GetTask(ctx, task.ID)
		requireAPIError(t, err, http.StatusNotFound, tasksdk.ErrorCodeNotFound)
	})

	t.Run("update", func(t *testing.T) {
		_, err := bob.UpdateTask(ctx, task.ID, tasksdk.TaskRequest{Title: "Bob's now"})
		requireAPIError(t, err, http.StatusNotFound, tasksdk.ErrorCodeNotFound)
	})

	t.Run("complete", func(t *testing.T) {
		_, err := bob.CompleteTask(ctx, task.ID)
		requireAPIError(t, err, http.StatusNotFound, tasksdk.ErrorCodeNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		err := bob.DeleteTask(ctx, task.ID)
		requireAPIError(t, err, http.StatusNotFound, tasksdk.ErrorCodeNotFound)
	})

	t.Run("list never leaks", func(t *testing.T) {
		tasks, err := bob.ListTasks(ctx, 0, 100)
		require.NoError(t, err)
		require.Empty(t, tasks)
	})

	// After all of Bob's attempts, Alice's task is untouched.
	stored, err := alice.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice's secret plan", stored.Title)
	require.False(t, stored.Completed)
}

// TestMissingAndForeignLookAlike confirms that a probe with a random id and a
// probe with another user's real id produce byte-identical error responses.
func TestMissingAndForeignLookAlike(t *testing.T) {
	ctx := context.Background()
	client := setupServer(t)

	alice := registerAndLogin(t, client, aliceEmail, alicePassword, aliceName)
	bob := registerAndLogin(t, client, bobEmail, bobPassword, bobName)

	task, err := alice.CreateTask(ctx, tasksdk.TaskRequest{Title: "Probe target"})
	require.NoError(t, err)

	_, foreignErr := bob.GetTask(ctx, task.ID)
	_, missingErr := bob.GetTask(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")

	requireAPIError(t, foreignErr, http.StatusNotFound, tasksdk.ErrorCodeNotFound)
	requireAPIError(t, missingErr, http.StatusNotFound, tasksdk.ErrorCodeNotFound)
	require.Equal(t, foreignErr.Error(), missingErr.Error())
}
