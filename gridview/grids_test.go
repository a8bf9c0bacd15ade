package gridview

import "testing"

func TestNewInitializesDistanceToOuterMargin(t *testing.T) {
	g := New(10, 10, 3, 3, 5)
	if g.OuterX != 16 || g.OuterZ != 16 {
		t.Fatalf("expected outer size 16x16, got %dx%d", g.OuterX, g.OuterZ)
	}
	for z := 0; z < g.OuterZ; z++ {
		for x := 0; x < g.OuterX; x++ {
			if g.DistanceAt(x, z) != 5 {
				t.Fatalf("expected distance %v at (%d,%d), got %v", 5.0, x, z, g.DistanceAt(x, z))
			}
			if g.TaskAt(x, z) != -1 {
				t.Fatalf("expected task -1 at (%d,%d), got %v", x, z, g.TaskAt(x, z))
			}
		}
	}
}

func TestSetAndViewTranslation(t *testing.T) {
	g := New(10, 10, 3, 3, 5)
	g.SetMain(3, 3, 4) // outer-grid (3,3) == map-space (0,0)

	view := g.MainView()
	v, ok := view.At(0, 0)
	if !ok || v != 4 {
		t.Fatalf("expected map-space (0,0) to read back 4, got (%v, %v)", v, ok)
	}

	if _, ok := view.At(-100, -100); ok {
		t.Errorf("expected out-of-range map-space coordinate to report ok=false")
	}
}

func TestClearResetsChannels(t *testing.T) {
	g := New(4, 4, 1, 1, 2)
	g.SetMain(2, 2, 9)
	g.SetTask(2, 2, 7)
	g.Clear()

	if g.MainAt(2, 2) != 0 {
		t.Errorf("expected main reset to 0, got %v", g.MainAt(2, 2))
	}
	if g.TaskAt(2, 2) != -1 {
		t.Errorf("expected task reset to -1, got %v", g.TaskAt(2, 2))
	}
	if g.DistanceAt(2, 2) != 2 {
		t.Errorf("expected distance reset to outer margin 2, got %v", g.DistanceAt(2, 2))
	}
}
