package grid

import "testing"

func TestAt_BoundarySentinel(t *testing.T) {
	g := New[int](3, 4)
	for i := range g.Data() {
		g.Data()[i] = 100 + i
	}

	// Every out-of-range read returns 0 regardless of contents.
	coords := [][2]int{
		{-1, 0}, {0, -1}, {-1, -1}, {3, 0}, {0, 4}, {3, 4},
		{-100, 2}, {2, 100}, {100, -100},
	}
	for _, c := range coords {
		if v := g.At(c[0], c[1]); v != 0 {
			t.Errorf("At(%d,%d) = %d, want sentinel 0", c[0], c[1], v)
		}
	}

	if v := g.At(1, 2); v != 100+1*4+2 {
		t.Errorf("At(1,2) = %d, want %d", v, 100+1*4+2)
	}
}

func TestFromSlice(t *testing.T) {
	g, err := FromSlice(2, 3, []int{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if g.At(1, 0) != 4 {
		t.Errorf("At(1,0) = %d, want 4", g.At(1, 0))
	}

	if _, err := FromSlice(2, 3, []int{1, 2}); err == nil {
		t.Error("expected error for length mismatch")
	}
	if _, err := FromSlice[int](-1, 3, nil); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestEmptyGrid(t *testing.T) {
	g := New[float64](0, 0)
	if g.Len() != 0 {
		t.Errorf("Len = %d, want 0", g.Len())
	}
	if v := g.At(0, 0); v != 0 {
		t.Errorf("At(0,0) on empty grid = %v, want 0", v)
	}

	// Zero height with nonzero width is also valid and empty.
	g2 := New[int](0, 17)
	if g2.Len() != 0 {
		t.Errorf("Len = %d, want 0", g2.Len())
	}
}

func TestCloneAndEqual(t *testing.T) {
	g, _ := FromSlice(2, 2, []int{1, 2, 3, 4})
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone differs from original")
	}
	c.Set(1, 1, 99)
	if g.Equal(c) {
		t.Error("mutating clone must not affect original")
	}
	if g.At(1, 1) != 4 {
		t.Errorf("original modified through clone: At(1,1) = %d", g.At(1, 1))
	}

	other := New[int](2, 3)
	if g.Equal(other) {
		t.Error("grids with different shapes compared equal")
	}
}
