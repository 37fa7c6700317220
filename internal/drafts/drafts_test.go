package drafts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestSaveLoadClear(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "", store.Load(SlotChat))

	require.NoError(t, store.Save(SlotChat, "what should I do tod"))
	require.Equal(t, "what should I do tod", store.Load(SlotChat))

	require.NoError(t, store.Clear(SlotChat))
	require.Equal(t, "", store.Load(SlotChat))
}

func TestSave_EmptyClears(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(SlotTaskTitle, "draft title"))
	require.NoError(t, store.Save(SlotTaskTitle, ""))
	require.Equal(t, "", store.Load(SlotTaskTitle))
}

func TestClear_AbsentIsNoOp(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Clear(SlotNewProject))
}

func TestSlotsAreIndependent(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(SlotChat, "chat draft"))
	require.NoError(t, store.Save(SlotTaskTitle, "task draft"))
	require.NoError(t, store.Clear(SlotChat))
	require.Equal(t, "task draft", store.Load(SlotTaskTitle))
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(SlotNewProject, `{"name":"Dream House"}`))

	reopened, err := Open(dir)
	require.NoError(t, err)
	require.Equal(t, `{"name":"Dream House"}`, reopened.Load(SlotNewProject))
}
