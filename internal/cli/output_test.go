package cli

import (
	"bytes"
	"strings"
	"testing"
)

func newTestOutput(jsonMode bool) (*Output, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Output{jsonMode: jsonMode, w: &out, errW: &errOut}, &out, &errOut
}

func TestOutput_Table(t *testing.T) {
	o, out, _ := newTestOutput(false)

	o.Table([]string{"ID", "TITLE"}, [][]string{{"1", "Broken login"}})

	got := out.String()
	for _, want := range []string{"ID", "TITLE", "Broken login"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q: %s", want, got)
		}
	}
}

func TestOutput_TableEmpty(t *testing.T) {
	o, out, errOut := newTestOutput(false)

	o.Table([]string{"ID", "TITLE"}, nil)

	// Голая шапка без строк не печатается
	if out.Len() != 0 {
		t.Errorf("expected no stdout output for empty table, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "No results") {
		t.Errorf("expected empty-result notice on stderr, got %q", errOut.String())
	}
}

func TestOutput_PrintJSONMode(t *testing.T) {
	o, out, _ := newTestOutput(true)

	o.Print([]string{"ID"}, [][]string{{"1"}}, map[string]int{"id": 1})

	if !strings.Contains(out.String(), `"id": 1`) {
		t.Errorf("expected json output, got %q", out.String())
	}
}

func TestOutput_JSONEncodeError(t *testing.T) {
	o, out, errOut := newTestOutput(true)

	// Каналы не сериализуются в JSON
	o.JSON(make(chan int))

	if out.Len() != 0 {
		t.Errorf("expected no stdout output on encode failure, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "encode json") {
		t.Errorf("expected encode error on stderr, got %q", errOut.String())
	}
}
