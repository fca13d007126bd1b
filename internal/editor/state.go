package editor

// SyncState describes persistence freshness of the in-session model.
//
// Transitions: any local mutation moves to StatePending; when the debounce
// fires the loop moves to StateSyncing; a successful remote save lands on
// StateSynced; a failed save or missing credential lands on StateError (the
// local fallback write still happened). Nothing else mutates this state.
type SyncState int

const (
	StateSynced SyncState = iota
	StatePending
	StateSyncing
	StateError
)

func (s SyncState) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StatePending:
		return "pending"
	case StateSyncing:
		return "syncing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
