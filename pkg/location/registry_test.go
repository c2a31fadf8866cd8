package location

import (
	"testing"

	"github.com/vango-dev/vroute/pkg/history"
)

func TestRegistrySharesHubsByConfiguration(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	src := history.NewMemory("/")

	a, err := reg.Hub(src, "/app")
	if err != nil {
		t.Fatalf("Hub: %v", err)
	}
	b, err := reg.Hub(src, "/app")
	if err != nil {
		t.Fatalf("Hub: %v", err)
	}
	if a != b {
		t.Error("same (source, base) must share one hub")
	}

	c, _ := reg.Hub(src, "/other")
	if c == a {
		t.Error("different base must get a different hub")
	}

	other := history.NewMemory("/")
	d, _ := reg.Hub(other, "/app")
	if d == a {
		t.Error("different source must get a different hub")
	}

	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}

func TestRegistrySharedHubSingleListener(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	src := history.NewMemory("/")
	a, _ := reg.Hub(src, "")
	b, _ := reg.Hub(src, "")

	var aFired, bFired int
	ca := a.Path().Subscribe(func(string) { aFired++ })
	defer ca()
	cb := b.Path().Subscribe(func(string) { bFired++ })
	defer cb()

	a.Navigate("/x")
	if aFired != 1 || bFired != 1 {
		t.Errorf("fired = (%d, %d), want (1, 1): observers share one hub", aFired, bFired)
	}
}

func TestRegistryNilSource(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	if _, err := reg.Hub(nil, ""); err != ErrNoSource {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
}

func TestRegistryCloseIsolation(t *testing.T) {
	reg := NewRegistry()
	src := history.NewMemory("/")

	hub, _ := reg.Hub(src, "")
	var fired int
	hub.Path().Subscribe(func(string) { fired++ })

	reg.Close()
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", reg.Len())
	}

	src.Push("/a", nil)
	src.Back()
	if fired != 0 {
		t.Errorf("fired = %d after Close, want 0", fired)
	}

	// A fresh request after Close builds a fresh hub.
	again, err := reg.Hub(src, "")
	if err != nil {
		t.Fatalf("Hub after Close: %v", err)
	}
	if again == hub {
		t.Error("Close must not hand back the torn-down hub")
	}
}
