package position

// Set is an insertion-ordered set of positions keyed by structure.
// The zero value is not usable; a nil *Set behaves as empty for reads.
type Set struct {
	index map[string]int
	items []Pos
}

func NewSet(ps ...Pos) *Set {
	s := &Set{index: make(map[string]int, len(ps))}
	for _, p := range ps {
		s.Add(p)
	}
	return s
}

// Add inserts p and reports whether it was new.
func (s *Set) Add(p Pos) bool {
	key := p.String()
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, p)
	return true
}

func (s *Set) Contains(p Pos) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[p.String()]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the positions in insertion order.
func (s *Set) Items() []Pos {
	if s == nil {
		return nil
	}
	out := make([]Pos, len(s.items))
	copy(out, s.items)
	return out
}

// Intersect keeps the positions of s that are also in o, in s's order.
func (s *Set) Intersect(o *Set) *Set {
	out := NewSet()
	if s == nil || o == nil {
		return out
	}
	small, large := s, o
	if o.Len() < s.Len() {
		small, large = o, s
	}
	keep := make(map[string]bool, small.Len())
	for key := range small.index {
		if _, ok := large.index[key]; ok {
			keep[key] = true
		}
	}
	for _, p := range s.items {
		if keep[p.String()] {
			out.Add(p)
		}
	}
	return out
}

// Filter returns the positions for which keep holds.
func (s *Set) Filter(keep func(Pos) bool) *Set {
	out := NewSet()
	if s == nil {
		return out
	}
	for _, p := range s.items {
		if keep(p) {
			out.Add(p)
		}
	}
	return out
}

// Equal reports whether both sets hold the same positions, ignoring order.
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, p := range s.Items() {
		if !o.Contains(p) {
			return false
		}
	}
	return true
}
