package poll

import (
	"context"
	"testing"
	"time"

	"github.com/large-farva/oakmon/internal/artifacts"
	"github.com/large-farva/oakmon/internal/daemon"
)

// fakeReader returns a scripted sequence of status documents, one per call.
type fakeReader struct {
	seq []*daemon.Status
	i   int
}

func (f *fakeReader) ReadStatus() *daemon.Status {
	if f.i >= len(f.seq) {
		return nil
	}
	s := f.seq[f.i]
	f.i++
	return s
}

// fakeLister returns a scripted sequence of directory listings.
type fakeLister struct {
	seq [][]artifacts.Reference
	i   int
}

func (f *fakeLister) Latest(dir, pattern string, count int) []artifacts.Reference {
	if f.i >= len(f.seq) {
		return nil
	}
	refs := f.seq[f.i]
	f.i++
	return refs
}

func refsFor(paths ...string) []artifacts.Reference {
	var refs []artifacts.Reference
	for _, p := range paths {
		refs = append(refs, artifacts.Reference{Path: p})
	}
	return refs
}

func TestNewStatusPoller_Validation(t *testing.T) {
	if _, err := NewStatusPoller(nil, time.Second); err == nil {
		t.Error("nil reader accepted")
	}
	if _, err := NewStatusPoller(&fakeReader{}, 0); err == nil {
		t.Error("zero interval accepted")
	}
}

func TestStatusPoller_NoCachingAcrossCycles(t *testing.T) {
	running := &daemon.Status{State: "running", Health: daemon.Health{Status: "healthy"}}
	p, err := NewStatusPoller(&fakeReader{seq: []*daemon.Status{running, nil}}, time.Second)
	if err != nil {
		t.Fatalf("NewStatusPoller err=%v", err)
	}

	first := p.PollOnce()
	if first.Status == nil || !first.Status.Running() {
		t.Fatalf("first emission = %+v, want running status", first.Status)
	}

	// The file vanished between intervals: the second emission must be
	// absent, not a cached copy of the first document.
	second := p.PollOnce()
	if second.Status != nil {
		t.Fatalf("second emission = %+v, want nil after file disappeared", second.Status)
	}
	if second.At.Before(first.At) {
		t.Error("emissions out of poll-time order")
	}
}

func TestFramePoller_TransitionSequence(t *testing.T) {
	// Directory listing across four cycles: [a], [a], [b], [b].
	lister := &fakeLister{seq: [][]artifacts.Reference{
		refsFor("a.jpg"),
		refsFor("a.jpg"),
		refsFor("b.jpg"),
		refsFor("b.jpg"),
	}}
	p, err := NewFramePoller(lister, "/frames", "rgb", time.Second)
	if err != nil {
		t.Fatalf("NewFramePoller err=%v", err)
	}

	type step struct {
		path    string
		changed bool
	}
	want := []step{
		{"a.jpg", true},
		{"a.jpg", false},
		{"b.jpg", true},
		{"b.jpg", false},
	}
	for i, w := range want {
		ev := p.PollOnce()
		if ev.Path != w.path || ev.Changed != w.changed {
			t.Errorf("cycle %d: got (%q, changed=%v), want (%q, changed=%v)",
				i, ev.Path, ev.Changed, w.path, w.changed)
		}
		if ev.Class != "rgb" {
			t.Errorf("cycle %d: class = %q, want rgb", i, ev.Class)
		}
	}
}

func TestFramePoller_EmptyListingIsNotAnEvent(t *testing.T) {
	lister := &fakeLister{seq: [][]artifacts.Reference{
		nil,
		refsFor("a.jpg"),
		nil,
		refsFor("a.jpg"),
	}}
	p, err := NewFramePoller(lister, "/frames", "depth", time.Second)
	if err != nil {
		t.Fatalf("NewFramePoller err=%v", err)
	}

	if ev := p.PollOnce(); ev.Changed || ev.Path != "" {
		t.Errorf("empty listing: got (%q, changed=%v), want no frames marker", ev.Path, ev.Changed)
	}
	if ev := p.PollOnce(); !ev.Changed {
		t.Error("first frame after empty listing should be an event")
	}
	if ev := p.PollOnce(); ev.Changed {
		t.Error("listing going empty should not be an event")
	}
	// Same frame resurfacing is still not news.
	if ev := p.PollOnce(); ev.Changed {
		t.Error("resurfaced known frame reported as changed")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	p, err := NewStatusPoller(&fakeReader{}, time.Millisecond)
	if err != nil {
		t.Fatalf("NewStatusPoller err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan StatusUpdate)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, out)
		close(done)
	}()

	// Drain a couple of emissions, then cancel.
	<-out
	<-out
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestFrameRun_EmitsEveryCycle(t *testing.T) {
	lister := &fakeLister{seq: [][]artifacts.Reference{
		refsFor("a.jpg"), refsFor("a.jpg"), refsFor("a.jpg"),
	}}
	p, err := NewFramePoller(lister, "/frames", "rgb", time.Millisecond)
	if err != nil {
		t.Fatalf("NewFramePoller err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan FrameEvent)
	go p.Run(ctx, out)

	first := <-out
	second := <-out
	if !first.Changed {
		t.Error("first emission should be a change event")
	}
	if second.Changed {
		t.Error("second emission should be a no-change marker")
	}
}
