package keymap

import (
	"bytes"
	"go/format"
	"os"
	"testing"
)

func TestSources_Gofmt(t *testing.T) {
	t.Parallel()

	src, err := os.ReadFile("matcher_test.go")
	if err != nil {
		t.Fatal(err)
	}
	out, err := format.Source(src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(src, out) {
		t.Fatalf("matcher_test.go is not gofmt-formatted")
	}
}
