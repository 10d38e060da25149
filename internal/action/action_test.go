package action

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
)

// declaredVariants returns the names of every type in this package with an
// isAction method, read from the source so a new variant cannot be missed.
func declaredVariants(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	fset := token.NewFileSet()
	var names []string
	for _, path := range files {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || fn.Name.Name != "isAction" {
				continue
			}
			recv := fn.Recv.List[0].Type
			if star, ok := recv.(*ast.StarExpr); ok {
				recv = star.X
			}
			if id, ok := recv.(*ast.Ident); ok {
				names = append(names, id.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func TestVariants_MatchDeclaredActions(t *testing.T) {
	t.Parallel()

	declared := declaredVariants(t)
	if len(declared) == 0 {
		t.Fatalf("found no isAction methods")
	}
	var listed []string
	for _, a := range Variants() {
		listed = append(listed, reflect.TypeOf(a).Name())
	}
	sort.Strings(listed)
	if !reflect.DeepEqual(declared, listed) {
		t.Fatalf("Variants() out of date\ndeclared: %v\nlisted:   %v", declared, listed)
	}
}

func TestRoute_EveryVariantHasARecipient(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, a := range Variants() {
		name := Name(a)
		if seen[name] {
			t.Fatalf("variant %s listed twice", name)
		}
		seen[name] = true

		got := Route(a)
		if got == None {
			t.Fatalf("Route(%s) = none", name)
		}
		if !got.Concrete() && got != All && got != Focused {
			t.Fatalf("Route(%s) = %s, not a recipient", name, got)
		}
	}
}

func TestRoute_Targets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action Action
		want   ComponentID
	}{
		{AddTask{}, DatabaseSetTasks},
		{RemoveWorkspace{}, DatabaseSetWorkspaces},
		{RequestWorkspacesData{}, DatabaseGet},
		{NewTasksData{}, Tasks},
		{HighlightWorkspace{}, Workspaces},
		{SetupSortMenu{}, SortMenu},
		{MoveItemUp{}, Focused},
		{SendKey{}, Focused},
		{Select{}, Focused},
		{Tick{}, All},
		{ExitSortMenu{}, All},
		{Error{Message: "x"}, All},
	}
	for _, tt := range tests {
		if got := Route(tt.action); got != tt.want {
			t.Fatalf("Route(%s)=%s want %s", Name(tt.action), got, tt.want)
		}
	}
	if got := Route(nil); got != None {
		t.Fatalf("Route(nil)=%s want none", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"MoveItemUp", "move-item-up", "move_item_up", " moveitemup "} {
		a, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if _, ok := a.(MoveItemUp); !ok {
			t.Fatalf("Parse(%q)=%T want MoveItemUp", in, a)
		}
	}
	if _, err := Parse("NewTasksData"); err == nil {
		t.Fatalf("expected data-carrying variants to be unbindable")
	}
	if _, err := Parse("Explode"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestQueue_FIFOAcrossProducers(t *testing.T) {
	t.Parallel()

	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Send(Tick{})
			}
		}()
	}
	wg.Wait()
	if got := q.Len(); got != 400 {
		t.Fatalf("Len=%d want 400", got)
	}

	q.Send(Resize{Width: 1, Height: 2})
	for i := 0; i < 400; i++ {
		if _, ok := q.Pop(); !ok {
			t.Fatalf("queue drained early at %d", i)
		}
	}
	a, ok := q.Pop()
	if !ok || a != (Resize{Width: 1, Height: 2}) {
		t.Fatalf("expected Resize last; got %#v ok=%v", a, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected empty queue")
	}
}
