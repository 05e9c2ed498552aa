package logtail

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestSource(t *testing.T, content string, out io.Writer) *Source {
	t.Helper()
	if out == nil {
		out = io.Discard
	}
	path := filepath.Join(t.TempDir(), "daemon.log")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewSource(path, log.New(out, "", 0))
}

func TestTail_LastN(t *testing.T) {
	s := newTestSource(t, "one\ntwo\nthree\nfour\n", nil)
	got := s.Tail(2)
	if !reflect.DeepEqual(got, []string{"three", "four"}) {
		t.Errorf("Tail(2) = %v, want [three four]", got)
	}
}

func TestTail_FewerLinesThanRequested(t *testing.T) {
	s := newTestSource(t, "only\n", nil)
	got := s.Tail(50)
	if !reflect.DeepEqual(got, []string{"only"}) {
		t.Errorf("Tail(50) = %v, want [only]", got)
	}
}

func TestTail_TrailingNewlineNotALine(t *testing.T) {
	s := newTestSource(t, "a\nb\n", nil)
	if got := s.Tail(10); len(got) != 2 {
		t.Errorf("Tail(10) = %v, trailing newline must not add an empty line", got)
	}
}

func TestTail_MissingFileWarns(t *testing.T) {
	var buf strings.Builder
	s := NewSource(filepath.Join(t.TempDir(), "absent.log"), log.New(&buf, "", 0))
	if got := s.Tail(10); got != nil {
		t.Errorf("Tail on missing file = %v, want nil", got)
	}
	if !strings.Contains(buf.String(), "warn:") {
		t.Errorf("expected a warning diagnostic, got %q", buf.String())
	}
}

func TestTail_NonPositiveCount(t *testing.T) {
	s := newTestSource(t, "a\n", nil)
	if got := s.Tail(0); got != nil {
		t.Errorf("Tail(0) = %v, want nil", got)
	}
	if got := s.Tail(-3); got != nil {
		t.Errorf("Tail(-3) = %v, want nil", got)
	}
}
