package dispatch

import (
	"bytes"
	"go/format"
	"os"
	"testing"
)

func TestSources_Gofmt(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"component.go", "dispatcher.go"} {
		src, err := os.ReadFile(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		out, err := format.Source(src)
		if err != nil {
			t.Fatalf("format %s: %v", name, err)
		}
		if !bytes.Equal(src, out) {
			t.Fatalf("%s is not gofmt-formatted", name)
		}
	}
}
