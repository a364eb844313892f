package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/gamedeck/internal/state"
)

// snapshotBuffer only needs to hold the latest snapshot; the channel
// observer drops older ones.
const snapshotBuffer = 1

// subscribe registers a channel observer on store.
func subscribe(store *state.Store) <-chan state.Snapshot {
	obs := state.NewChannelObserver(snapshotBuffer)
	store.Subscribe(obs)
	return obs.C()
}

// WaitForStoreCmd blocks until the store publishes a snapshot.
func WaitForStoreCmd(ch <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Snapshot: snap}
	}
}
