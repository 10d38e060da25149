package cli

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmed-hajnasr/do-me/internal/model"
	"github.com/mmed-hajnasr/do-me/internal/store"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, dir string, args ...string) runResult {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data-dir", dir, "--config", filepath.Join(dir, "missing.toml")}, args...))
	err := cmd.Execute()
	return runResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	res := runCLI(t, dir, args...)
	if res.err != nil {
		t.Fatalf("do-me %s: %v\nstderr: %s", strings.Join(args, " "), res.err, res.stderr)
	}
	return res.stdout
}

func decodeData[T any](t *testing.T, s string) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return env.Data
}

func TestCLI_WorkspaceAndTaskLifecycle(t *testing.T) {
	dir := t.TempDir()

	ws := decodeData[model.Workspace](t, mustRun(t, dir, "workspaces", "add", "Home"))
	if ws.Name != "Home" || ws.Order != 0 || !strings.HasPrefix(ws.ID, "ws-") {
		t.Fatalf("unexpected workspace %+v", ws)
	}

	milk := decodeData[model.Task](t, mustRun(t, dir, "tasks", "add", "Buy milk", "-w", "Home"))
	dog := decodeData[model.Task](t, mustRun(t, dir, "tasks", "add", "Walk dog", "-w", ws.ID, "--at", "0", "--priority", "2"))
	if dog.Order != 0 || dog.Priority != 2 {
		t.Fatalf("unexpected task %+v", dog)
	}

	tasks := decodeData[[]model.Task](t, mustRun(t, dir, "tasks", "list", "-w", "Home"))
	if len(tasks) != 2 || tasks[0].ID != dog.ID || tasks[1].ID != milk.ID || tasks[1].Order != 1 {
		t.Fatalf("unexpected listing %+v", tasks)
	}

	done := decodeData[model.Task](t, mustRun(t, dir, "tasks", "done", milk.ID, "-w", "Home"))
	if !done.Completed {
		t.Fatalf("expected completed task")
	}
	undone := decodeData[model.Task](t, mustRun(t, dir, "tasks", "done", "Buy milk", "-w", "Home", "--undo"))
	if undone.Completed {
		t.Fatalf("expected --undo to clear completion")
	}

	mustRun(t, dir, "tasks", "rm", "Walk dog", "-w", "Home")
	tasks = decodeData[[]model.Task](t, mustRun(t, dir, "tasks", "list", "-w", "Home"))
	if len(tasks) != 1 || tasks[0].Order != 0 {
		t.Fatalf("expected one dense task left; got %+v", tasks)
	}
}

func TestCLI_Errors(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "workspaces", "add", "Home")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "duplicate workspace", args: []string{"workspaces", "add", "Home"}, want: "already exists"},
		{name: "empty name", args: []string{"workspaces", "add", "  "}, want: "must not be empty"},
		{name: "unknown workspace", args: []string{"tasks", "list", "-w", "Nope"}, want: "workspace not found"},
		{name: "missing workspace flag", args: []string{"tasks", "list"}, want: "no workspace given"},
		{name: "bad position", args: []string{"workspaces", "move", "Home", "top"}, want: "invalid syntax"},
		{name: "bad sort key", args: []string{"tasks", "list", "-w", "Home", "--sort", "colour"}, want: "unknown sort key"},
		{name: "bad format", args: []string{"workspaces", "list", "--format", "edn"}, want: "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DO_ME_WORKSPACE", "")
			res := runCLI(t, dir, tt.args...)
			if res.err == nil {
				t.Fatalf("expected error; stdout: %s", res.stdout)
			}
			if !strings.Contains(res.stderr, tt.want) {
				t.Fatalf("expected %q in stderr; got %q", tt.want, res.stderr)
			}
		})
	}
}

func TestCLI_YAMLOutput(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "workspaces", "add", "Home")

	out := mustRun(t, dir, "workspaces", "list", "--format", "yaml")
	if !strings.Contains(out, "name: Home") || !strings.HasPrefix(out, "data:") {
		t.Fatalf("unexpected yaml output:\n%s", out)
	}
}

func TestCLI_KeysHonorsConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	writeFile(t, cfg, "[keybindings.navigation]\n\"ctrl+n\" = \"GoDown\"\n")

	res := runCLI(t, dir, "--config", cfg, "keys", "--mode", "navigation")
	if res.err != nil {
		t.Fatalf("keys: %v\n%s", res.err, res.stderr)
	}
	binds := decodeData[[]keyBinding](t, res.stdout)
	found := false
	for _, b := range binds {
		if b.Keys == "ctrl+n" && b.Action == "GoDown" && b.Mode == "navigation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ctrl+n binding in %+v", binds)
	}
}

func TestCLI_DebugRunsVerifyOrder(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "workspaces", "add", "Home")

	db, err := sql.Open("sqlite", store.DBPath(dir))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec(`UPDATE workspaces SET workspace_order = 5`); err != nil {
		t.Fatalf("corrupt order: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	t.Setenv("DO_ME_DEBUG", "")
	res := runCLI(t, dir, "--log-level", "debug", "workspaces", "add", "Work")
	if res.err == nil || !strings.Contains(res.stderr, "order invariant violated") {
		t.Fatalf("expected debug run to reject broken order; err=%v stderr=%q", res.err, res.stderr)
	}

	t.Setenv("DO_ME_DEBUG", "1")
	if res := runCLI(t, dir, "workspaces", "add", "Work"); res.err == nil {
		t.Fatalf("expected DO_ME_DEBUG to reject broken order")
	}

	t.Setenv("DO_ME_DEBUG", "")
	mustRun(t, dir, "workspaces", "add", "Work")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
