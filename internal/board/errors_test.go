package board

import (
	"context"
	"testing"

	"project-board-api/internal/models"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestStoreFailureLogsRootCauseAndHidesItFromCaller(t *testing.T) {
	f := newFixture(t)
	hook := logtest.NewGlobal()
	defer hook.Reset()

	// make every task read fail at the store level
	require.NoError(t, f.db.Migrator().DropTable(&models.Task{}))

	_, err := f.co.MoveTask(context.Background(), f.owner.ID, "t-x", f.doneCol.ID, 0)
	require.ErrorIs(t, err, ErrPersistence)
	// the caller-visible error carries the operation, never storage detail
	require.Equal(t, "persistence failed: loading task", err.Error())

	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "store operation failed" && e.Data["error"] != nil {
			found = true
		}
	}
	require.True(t, found, "the underlying store error must be logged at the wrap site")
}
