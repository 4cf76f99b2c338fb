package universe

import (
	"errors"
	"fmt"
	"iter"
)

//ErrInvalidBufferSize is returned by NewLife when the cell buffers don't match the dimensions
var ErrInvalidBufferSize = errors.New("invalid buffer size")

//Cell is the state of one cell of the field
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

//Site is one cell of the current generation together with its position
type Site struct {
	Row  int
	Col  int
	Cell Cell
}

/*
	Life is the toroidal Game of Life engine
	It owns two equally sized buffers supplied by the caller: the current generation and the scratch buffer.
	Tick writes the next generation to the scratch buffer and swaps the buffer roles, so nothing is allocated after construction.
	Life does no locking, the owner serializes access.
*/
type Life struct {
	width  int
	height int
	bufs   [2][]Cell
	active int
}

//NewLife creates the engine over the caller supplied buffers
//cells holds the initial generation, next is scratch; both must have width*height elements
func NewLife(width int, height int, cells []Cell, next []Cell) (*Life, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimension %vx%v", ErrInvalidBufferSize, width, height)
	}
	size := width * height
	if len(cells) != size || len(next) != size {
		return nil, fmt.Errorf("%w: %vx%v needs %v cells, got %v and %v",
			ErrInvalidBufferSize, width, height, size, len(cells), len(next))
	}
	return &Life{
		width:  width,
		height: height,
		bufs:   [2][]Cell{cells, next},
	}, nil
}

//NewLifeSize allocates both buffers once and creates the engine with an empty field
func NewLifeSize(width int, height int) (*Life, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimension %vx%v", ErrInvalidBufferSize, width, height)
	}
	b := make([]Cell, 2*width*height)
	return NewLife(width, height, b[:width*height:width*height], b[width*height:])
}

func (l *Life) Width() int {
	return l.width
}

func (l *Life) Height() int {
	return l.height
}

//Cells returns the current generation in row-major order
//the slice is owned by the engine and becomes the scratch buffer on the next Tick
func (l *Life) Cells() []Cell {
	return l.bufs[l.active]
}

//At returns the cell at row, col; the coordinates wrap around the field
func (l *Life) At(row int, col int) Cell {
	return l.bufs[l.active][l.index(row, col)]
}

//Set sets the cell at row, col; the coordinates wrap around the field
func (l *Life) Set(row int, col int, c Cell) {
	l.bufs[l.active][l.index(row, col)] = c
}

//Toggle inverses the cell at row, col
func (l *Life) Toggle(row int, col int) {
	i := l.index(row, col)
	cur := l.bufs[l.active]
	if cur[i] == Alive {
		cur[i] = Dead
	} else {
		cur[i] = Alive
	}
}

//Clear kills all cells of the current generation
func (l *Life) Clear() {
	cur := l.bufs[l.active]
	for i := range cur {
		cur[i] = Dead
	}
}

//LiveCells calculates the count of live cells
func (l *Life) LiveCells() (n int) {
	for _, c := range l.bufs[l.active] {
		if c == Alive {
			n++
		}
	}
	return
}

//LiveNeighbours counts the live cells among the 8 neighbours of row, col
//the field is a torus: row 0 neighbours row height-1 and col 0 neighbours col width-1
func (l *Life) LiveNeighbours(row int, col int) (n int) {
	cur := l.bufs[l.active]
	row = wrap(row, l.height)
	col = wrap(col, l.width)
	for _, dr := range [3]int{l.height - 1, 0, 1} {
		r := (row + dr) % l.height
		for _, dc := range [3]int{l.width - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			c := (col + dc) % l.width
			if cur[r*l.width+c] == Alive {
				n++
			}
		}
	}
	return
}

//Tick computes the next generation and makes it the current one
//returns the number of live cells in the new generation and whether any cell changed
func (l *Life) Tick() (live int, changed bool) {
	cur := l.bufs[l.active]
	nxt := l.bufs[1-l.active]
	for row := 0; row < l.height; row++ {
		for col := 0; col < l.width; col++ {
			i := row*l.width + col
			state := nextState(cur[i], l.LiveNeighbours(row, col))
			if state == Alive {
				live++
			}
			changed = changed || state != cur[i]
			nxt[i] = state
		}
	}
	l.active = 1 - l.active
	return
}

//Iter returns the cells of the current generation in row-major order
//the sequence doesn't mutate the engine and can be ranged over again after the next Tick
func (l *Life) Iter() iter.Seq[Site] {
	return func(yield func(Site) bool) {
		cur := l.bufs[l.active]
		for i, c := range cur {
			if !yield(Site{Row: i / l.width, Col: i % l.width, Cell: c}) {
				return
			}
		}
	}
}

//Walk walks the current generation and calls the cb function for each cell
func (l *Life) Walk(cb func(row int, col int, c Cell)) {
	for s := range l.Iter() {
		cb(s.Row, s.Col, s.Cell)
	}
}

func (l *Life) index(row int, col int) int {
	return wrap(row, l.height)*l.width + wrap(col, l.width)
}

//nextState applies the B3/S23 rule
func nextState(c Cell, liveNeighbours int) Cell {
	switch {
	case liveNeighbours == 3:
		return Alive
	case liveNeighbours == 2 && c == Alive:
		return Alive
	}
	return Dead
}

func wrap(v int, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

//SeedPattern settles the field with the pattern the badge demo starts from:
//cell i is alive when i is divisible by 2 or by 7
func SeedPattern(l *Life) {
	cur := l.bufs[l.active]
	for i := range cur {
		if i%2 == 0 || i%7 == 0 {
			cur[i] = Alive
		} else {
			cur[i] = Dead
		}
	}
}
