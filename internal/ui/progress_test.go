package ui

import (
	"strings"
	"testing"
)

func TestHeadlessManagerForce(t *testing.T) {
	hm := NewHeadlessManager()

	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("IsHeadless() = false after forcing headless")
	}

	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("IsHeadless() = true after forcing interactive")
	}

	hm.ClearForce()
	// After clearing, detection falls back to the TTY state; under
	// go test stdin is not a terminal.
	if !hm.IsHeadless() {
		t.Error("IsHeadless() = false with non-TTY stdin")
	}
}

func TestNewSpinnerHeadlessFallback(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)

	sp := NewSpinner(DefaultTheme(), hm, "working")
	if _, ok := sp.(*headlessSpinner); !ok {
		t.Fatalf("NewSpinner() = %T, want headless spinner without a TTY", sp)
	}
	sp.Stop()
}

func TestHeadlessSpinnerPrintsTitles(t *testing.T) {
	var buf strings.Builder
	sp := newHeadlessSpinner("starting", &buf)
	sp.SetTitle("step one")
	sp.SetTitle("step two")
	sp.Stop()

	got := buf.String()
	want := "starting\nstep one\nstep two\n"
	if got != want {
		t.Errorf("headless spinner output = %q, want %q", got, want)
	}
}

func TestHeadlessSpinnerEmptyInitialTitle(t *testing.T) {
	var buf strings.Builder
	sp := newHeadlessSpinner("", &buf)
	sp.Stop()

	if buf.Len() != 0 {
		t.Errorf("empty title printed: %q", buf.String())
	}
}
