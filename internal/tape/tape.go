// Package tape implements the bookkeeping-only tape model from spec.md §4.1:
// it tracks which cells are occupied and hands out free addresses, but never
// emits Brainfuck itself.
package tape

// Owner identifies whoever holds a cell, for diagnostics only.
type Owner interface{}

// Tape tracks the occupied-set over the monotonic address space {0,1,2,...}.
type Tape struct {
	occupied map[int]Owner
}

// New creates an empty Tape.
func New() *Tape {
	return &Tape{occupied: make(map[int]Owner)}
}

// Alloc allocates a single free cell at the lowest free address >= hint and
// records owner as its occupant.
func (t *Tape) Alloc(hint int, owner Owner) int {
	addr := hint
	if addr < 0 {
		addr = 0
	}
	for {
		if _, used := t.occupied[addr]; !used {
			t.occupied[addr] = owner
			return addr
		}
		addr++
	}
}

// AllocRun allocates a contiguous run of n free cells at the lowest starting
// address >= hint, scanning the occupied-set for the first gap of at least
// that length (spec.md §4.1). In this module the if-construct's private
// cells are the one user of a run.
func (t *Tape) AllocRun(n int, hint int, owner Owner) int {
	if n <= 0 {
		panic("tape: AllocRun requires n > 0")
	}
	start := hint
	if start < 0 {
		start = 0
	}
	for {
		free := true
		for a := start; a < start+n; a++ {
			if _, used := t.occupied[a]; used {
				free = false
				start = a + 1
				break
			}
		}
		if free {
			for a := start; a < start+n; a++ {
				t.occupied[a] = owner
			}
			return start
		}
	}
}

// Release frees addr. Idempotent: releasing an already-free or unknown
// address is a no-op. The freed cell's Brainfuck-level value is left
// unspecified; callers that reuse the address must re-zero before relying
// on it.
func (t *Tape) Release(addr int) {
	delete(t.occupied, addr)
}

// Occupied reports whether addr currently belongs to a live owner.
func (t *Tape) Occupied(addr int) bool {
	_, used := t.occupied[addr]
	return used
}

// Len returns the number of currently live cells (for invariant checks /
// tests; spec.md Invariant 1).
func (t *Tape) Len() int {
	return len(t.occupied)
}
