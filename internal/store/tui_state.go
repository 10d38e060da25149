package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// SortState is a persisted sort choice for one list.
type SortState struct {
	Key  string `json:"key,omitempty"`
	Desc bool   `json:"desc,omitempty"`
}

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// It lives next to the database in the data dir and is best effort: callers
// should tolerate missing or invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Focus is one of: workspaces|tasks
	Focus string `json:"focus,omitempty"`

	SelectedWorkspaceID string `json:"selectedWorkspaceId,omitempty"`

	WorkspaceSort SortState `json:"workspaceSort,omitempty"`
	TaskSort      SortState `json:"taskSort,omitempty"`

	// Selections maps a list scope ("workspaces" or a workspace id) to its last cursor row.
	Selections map[string]int `json:"selections,omitempty"`
}

func tuiStatePath(dataDir string) string {
	return filepath.Join(dataDir, tuiStateFileName)
}

func LoadTUIState(dataDir string) (*TUIState, error) {
	if strings.TrimSpace(dataDir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(tuiStatePath(dataDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveTUIState(dataDir string, st *TUIState) error {
	if st == nil {
		return nil
	}
	if strings.TrimSpace(dataDir) == "" {
		return nil
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := tuiStatePath(dataDir)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
