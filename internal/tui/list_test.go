package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/config"
	"github.com/mmed-hajnasr/do-me/internal/model"
)

func workspaceRows(names ...string) []list.Item {
	out := make([]list.Item, len(names))
	for i, n := range names {
		out[i] = workspaceItem{model.Workspace{ID: "ws-" + n, Name: n, Order: i}}
	}
	return out
}

func TestNavigate_WrapsAndJumps(t *testing.T) {
	t.Parallel()

	c := newWorkspacesComponent(newTheme(config.Styles{}))
	c.list.SetItems(workspaceRows("a", "b", "c"))
	c.list.SetSize(20, 2)

	tests := []struct {
		a    action.Action
		want int
	}{
		{action.GoUp{}, 2},
		{action.GoDown{}, 0},
		{action.GoDown{}, 1},
		{action.GoToBottom{}, 2},
		{action.GoDown{}, 0},
		{action.GoToTop{}, 0},
	}
	for i, tt := range tests {
		if !navigate(&c.list, tt.a) {
			t.Fatalf("step %d: %s not handled", i, action.Name(tt.a))
		}
		if got := c.list.Index(); got != tt.want {
			t.Fatalf("step %d: %s -> %d want %d", i, action.Name(tt.a), got, tt.want)
		}
	}
	if navigate(&c.list, action.DeleteItem{}) {
		t.Fatalf("DeleteItem is not a cursor action")
	}
}

func TestNavigate_EmptyList(t *testing.T) {
	t.Parallel()

	c := newWorkspacesComponent(newTheme(config.Styles{}))
	for _, a := range []action.Action{action.GoUp{}, action.GoDown{}, action.GoToTop{}, action.GoToBottom{}} {
		navigate(&c.list, a)
		if _, ok := c.current(); ok {
			t.Fatalf("%s: expected nothing selected", action.Name(a))
		}
	}
}

func TestDraft_RestoresSelection(t *testing.T) {
	t.Parallel()

	c := newWorkspacesComponent(newTheme(config.Styles{}))
	c.list.SetItems(workspaceRows("a", "b", "c"))
	c.list.Select(1)

	prev := startDraft(&c.list, 2)
	if prev != 1 || c.list.Index() != 2 || len(c.list.Items()) != 4 {
		t.Fatalf("unexpected draft state: prev=%d index=%d items=%d", prev, c.list.Index(), len(c.list.Items()))
	}
	if _, ok := c.current(); ok {
		t.Fatalf("the draft row is not a workspace")
	}

	endDraft(&c.list, prev)
	if len(c.list.Items()) != 3 {
		t.Fatalf("expected draft removed; got %d items", len(c.list.Items()))
	}
	if w, _ := c.current(); w.Name != "b" {
		t.Fatalf("expected b selected again; got %q", w.Name)
	}
}

func TestWorkspacesView_DrawsFieldAtInsertRow(t *testing.T) {
	t.Parallel()

	c := newWorkspacesComponent(newTheme(config.Styles{}))
	c.items = []model.Workspace{{ID: "ws-a", Name: "alpha"}, {ID: "ws-b", Name: "beta", Order: 1}}
	c.setItems()
	c.list.Select(0)
	c.startEdit(editInsert, 1, 1, "", "")

	lines := strings.Split(xansi.Strip(c.View(30, 8)), "\n")
	var rows []string
	for _, ln := range lines {
		if s := strings.Trim(ln, "│╭╮╰╯─ "); s != "" {
			rows = append(rows, s)
		}
	}
	if len(rows) < 4 || !strings.Contains(rows[1], "alpha") || !strings.HasPrefix(rows[2], ">") || !strings.Contains(rows[3], "beta") {
		t.Fatalf("expected field between alpha and beta; got %q", rows)
	}
}
