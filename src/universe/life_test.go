package universe

import (
	"errors"
	"slices"
	"testing"
)

func newTestLife(t testing.TB, width int, height int, alive ...[2]int) *Life {
	t.Helper()
	l, err := NewLifeSize(width, height)
	if err != nil {
		t.Fatal(err)
	}
	for _, rc := range alive {
		l.Set(rc[0], rc[1], Alive)
	}
	return l
}

func liveSites(l *Life) (sites [][2]int) {
	for s := range l.Iter() {
		if s.Cell == Alive {
			sites = append(sites, [2]int{s.Row, s.Col})
		}
	}
	return
}

func TestNewLife_BufferSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cells, next   int
	}{
		{"short cells", 3, 3, 8, 9},
		{"short next", 3, 3, 9, 8},
		{"long cells", 4, 2, 9, 8},
		{"zero width", 0, 3, 0, 0},
		{"negative height", 3, -1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLife(tt.width, tt.height, make([]Cell, tt.cells), make([]Cell, tt.next))
			if !errors.Is(err, ErrInvalidBufferSize) {
				t.Fatalf("err = %v, want ErrInvalidBufferSize", err)
			}
			if l != nil {
				t.Errorf("got engine %v on error", l)
			}
		})
	}

	if _, err := NewLife(4, 2, make([]Cell, 8), make([]Cell, 8)); err != nil {
		t.Fatalf("matching buffers: %v", err)
	}
}

func TestNewLife_SeededBuffer(t *testing.T) {
	cells := make([]Cell, 6)
	cells[4] = Alive
	l, err := NewLife(3, 2, cells, make([]Cell, 6))
	if err != nil {
		t.Fatal(err)
	}
	if got := l.At(1, 1); got != Alive {
		t.Errorf("At(1, 1) = %v, want alive", got)
	}
}

func TestLife_Wraparound(t *testing.T) {
	for _, size := range [][2]int{{3, 3}, {4, 5}, {7, 3}} {
		w, h := size[0], size[1]
		l := newTestLife(t, w, h, [2]int{0, 0})
		neighbours := [][2]int{
			{h - 1, w - 1}, {h - 1, 0}, {h - 1, 1},
			{0, w - 1}, {0, 1},
			{1, w - 1}, {1, 0}, {1, 1},
		}
		for _, rc := range neighbours {
			if n := l.LiveNeighbours(rc[0], rc[1]); n != 1 {
				t.Errorf("%vx%v: LiveNeighbours(%v, %v) = %v, want 1", w, h, rc[0], rc[1], n)
			}
		}
		if n := l.LiveNeighbours(0, 0); n != 0 {
			t.Errorf("%vx%v: cell counted as its own neighbour", w, h)
		}
	}
}

func TestLife_Blinker(t *testing.T) {
	horizontal := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	vertical := [][2]int{{1, 2}, {2, 2}, {3, 2}}
	l := newTestLife(t, 5, 5, horizontal...)

	l.Tick()
	if got := liveSites(l); !slices.Equal(got, vertical) {
		t.Fatalf("after 1 tick: %v, want %v", got, vertical)
	}
	l.Tick()
	if got := liveSites(l); !slices.Equal(got, horizontal) {
		t.Fatalf("after 2 ticks: %v, want %v", got, horizontal)
	}
}

func TestLife_FullRowOnSmallTorus(t *testing.T) {
	//on a 3x3 torus every cell neighbours all the others
	l := newTestLife(t, 3, 3, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})
	if live, changed := l.Tick(); live != 9 || !changed {
		t.Fatalf("Tick() = %v, %v, want 9, true", live, changed)
	}
	if live, _ := l.Tick(); live != 0 {
		t.Fatalf("overcrowded field kept %v cells", live)
	}
}

func TestLife_Block(t *testing.T) {
	for _, size := range [][2]int{{4, 4}, {6, 5}, {16, 9}} {
		block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
		l := newTestLife(t, size[0], size[1], block...)
		for i := 0; i < 10; i++ {
			if _, changed := l.Tick(); changed {
				t.Fatalf("%vx%v: block changed on tick %v", size[0], size[1], i)
			}
		}
		if got := liveSites(l); !slices.Equal(got, block) {
			t.Errorf("%vx%v: %v, want %v", size[0], size[1], got, block)
		}
	}
}

func TestLife_GliderWrapsAround(t *testing.T) {
	glider := [][2]int{{0, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 3}}
	l := newTestLife(t, 8, 8, glider...)

	for i := 0; i < 4; i++ {
		l.Tick()
	}
	shifted := [][2]int{{1, 3}, {2, 4}, {3, 2}, {3, 3}, {3, 4}}
	if got := liveSites(l); !slices.Equal(got, shifted) {
		t.Fatalf("after 4 ticks: %v, want %v", got, shifted)
	}
	for i := 4; i < 32; i++ {
		l.Tick()
	}
	if got := liveSites(l); !slices.Equal(got, glider) {
		t.Fatalf("after 32 ticks: %v, want %v", got, glider)
	}
}

func TestLife_IterIsRepeatable(t *testing.T) {
	l := newTestLife(t, 6, 4)
	SeedPattern(l)
	first := slices.Collect(l.Iter())
	second := slices.Collect(l.Iter())
	if !slices.Equal(first, second) {
		t.Fatal("two iterations without a tick differ")
	}
	if len(first) != 24 {
		t.Fatalf("got %v sites, want 24", len(first))
	}
	for i, s := range first {
		if s.Row != i/6 || s.Col != i%6 {
			t.Fatalf("site %v at (%v, %v), want row-major order", i, s.Row, s.Col)
		}
	}

	l.Tick()
	third := slices.Collect(l.Iter())
	if slices.Equal(first, third) {
		t.Fatal("iteration after a tick shows the old generation")
	}
}

func TestLife_IterStops(t *testing.T) {
	l := newTestLife(t, 5, 5)
	n := 0
	for range l.Iter() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("iterated %v sites, want 3", n)
	}
}

func TestLife_Walk(t *testing.T) {
	l := newTestLife(t, 3, 2, [2]int{1, 2})
	var live []int
	l.Walk(func(row int, col int, c Cell) {
		if c == Alive {
			live = append(live, row, col)
		}
	})
	if !slices.Equal(live, []int{1, 2}) {
		t.Errorf("Walk found %v", live)
	}
}

func TestLife_SetWrapsAndToggle(t *testing.T) {
	l := newTestLife(t, 4, 3)
	l.Set(-1, 4, Alive)
	if l.At(2, 0) != Alive {
		t.Fatal("Set(-1, 4) didn't land on (2, 0)")
	}
	l.Toggle(2, 0)
	if l.At(2, 0) != Dead || l.LiveCells() != 0 {
		t.Fatal("Toggle didn't kill the cell")
	}
	l.Toggle(0, 0)
	l.Clear()
	if l.LiveCells() != 0 {
		t.Fatal("Clear left live cells")
	}
}

func TestSeedPattern(t *testing.T) {
	l := newTestLife(t, 10, 3)
	SeedPattern(l)
	for i, c := range l.Cells() {
		want := Dead
		if i%2 == 0 || i%7 == 0 {
			want = Alive
		}
		if c != want {
			t.Fatalf("cell %v = %v, want %v", i, c, want)
		}
	}
}

func TestLife_TickDoesNotAllocate(t *testing.T) {
	l := newTestLife(t, 32, 16)
	SeedPattern(l)
	if n := testing.AllocsPerRun(10, func() { l.Tick() }); n != 0 {
		t.Fatalf("Tick allocates %v times", n)
	}
}

func BenchmarkLife_Tick(b *testing.B) {
	l := newTestLife(b, 160, 128)
	SeedPattern(l)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Tick()
	}
}
