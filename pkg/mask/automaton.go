package mask

// Automaton tracks a mask session: the accepted bytes plus, per cell, the
// mask element each byte landed on. Characters are matched greedily
// against the current element before the automaton advances past
// optional elements and literals to find a home for them.
type Automaton struct {
	mask []Element
	buf  []byte
	elem []int // mask element index per buffer cell
}

// New returns an automaton for a compiled mask.
func New(mask []Element) *Automaton {
	return &Automaton{mask: mask}
}

// Buffer returns the accepted bytes, literals included.
func (a *Automaton) Buffer() []byte { return a.buf }

func (a *Automaton) String() string { return string(a.buf) }

// Len returns the number of filled cells.
func (a *Automaton) Len() int { return len(a.buf) }

// Empty reports whether nothing has been accepted.
func (a *Automaton) Empty() bool { return len(a.buf) == 0 }

// state returns the element index the next character is tested against
// and how many cells that element holds consecutively at the tail. With
// nothing typed the probe starts at the first non-literal element, so a
// fully erased field behaves like a fresh one.
func (a *Automaton) state() (int, int) {
	if len(a.elem) == 0 {
		return a.firstNonLiteral(), 0
	}
	idx := a.elem[len(a.elem)-1]
	count := 0
	for i := len(a.elem) - 1; i >= 0 && a.elem[i] == idx; i-- {
		count++
	}
	return idx, count
}

func (a *Automaton) firstNonLiteral() int {
	for i, e := range a.mask {
		if e.Class != ClassLiteral {
			return i
		}
	}
	return len(a.mask)
}

func (a *Automaton) push(ch byte, idx int) {
	a.buf = append(a.buf, ch)
	a.elem = append(a.elem, idx)
}

func (a *Automaton) pop() {
	a.buf = a.buf[:len(a.buf)-1]
	a.elem = a.elem[:len(a.elem)-1]
}

// insertLiterals appends the run of consecutive literal elements starting
// at from, returning the bytes added so they can be echoed.
func (a *Automaton) insertLiterals(from int) []byte {
	var added []byte
	for idx := from; idx < len(a.mask); idx++ {
		e := a.mask[idx]
		if e.Class != ClassLiteral {
			break
		}
		a.push(e.Lit, idx)
		added = append(added, e.Lit)
	}
	return added
}

// Start seeds an empty field with its leading literals and returns the
// bytes to echo.
func (a *Automaton) Start() []byte {
	return a.insertLiterals(0)
}

// tryAdvance looks from element from onward for one that accepts ch.
// Literals are stepped over, optional elements that do not match are
// skipped, and a required element that does not match blocks the advance.
func (a *Automaton) tryAdvance(from int, ch byte) (int, bool) {
	for idx := from; idx < len(a.mask); idx++ {
		e := a.mask[idx]
		if e.Class == ClassLiteral {
			continue
		}
		if e.Matches(ch) {
			return idx, true
		}
		if e.Quant.min() > 0 {
			return 0, false
		}
	}
	return 0, false
}

// Accept feeds one typed character through the automaton. It returns the
// bytes that became part of the field in display order, spliced literals
// included, and whether the character was taken at all.
func (a *Automaton) Accept(ch byte) ([]byte, bool) {
	idx, count := a.state()
	wasEmpty := len(a.elem) == 0

	canAcceptMore := false
	if idx < len(a.mask) {
		switch a.mask[idx].Quant {
		case QuantOne, QuantOpt:
			canAcceptMore = count < 1
		default:
			canAcceptMore = true
		}
	}

	if canAcceptMore && a.mask[idx].Matches(ch) {
		var echoed []byte
		if wasEmpty {
			echoed = append(echoed, a.insertLiterals(0)...)
		}
		a.push(ch, idx)
		echoed = append(echoed, ch)
		if q := a.mask[idx].Quant; q == QuantOne || q == QuantOpt {
			echoed = append(echoed, a.insertLiterals(idx+1)...)
		}
		return echoed, true
	}

	minSatisfied := true
	if idx < len(a.mask) {
		minSatisfied = count >= a.mask[idx].Quant.min()
	}
	if !minSatisfied {
		return nil, false
	}

	newIdx, ok := a.tryAdvance(idx+1, ch)
	if !ok {
		return nil, false
	}

	var echoed []byte
	if wasEmpty {
		echoed = append(echoed, a.insertLiterals(0)...)
	}
	echoed = append(echoed, a.insertLiterals(idx+1)...)
	// Literals sitting past a skipped optional element still belong in
	// the field; splice them in before the character itself.
	last := -1
	if len(a.elem) > 0 {
		last = a.elem[len(a.elem)-1]
	}
	for li := last + 1; li < newIdx; li++ {
		if a.mask[li].Class == ClassLiteral {
			a.push(a.mask[li].Lit, li)
			echoed = append(echoed, a.mask[li].Lit)
		}
	}
	a.push(ch, newIdx)
	echoed = append(echoed, ch)
	if q := a.mask[newIdx].Quant; q == QuantOne || q == QuantOpt {
		echoed = append(echoed, a.insertLiterals(newIdx+1)...)
	}
	return echoed, true
}

// Backspace removes the last cell, then chains backwards over any
// literals it exposes so a separator never dangles at the end of the
// field. It returns the number of cells removed.
func (a *Automaton) Backspace() int {
	if len(a.buf) == 0 {
		return 0
	}
	a.pop()
	removed := 1
	for len(a.buf) > 0 {
		lastIdx := a.elem[len(a.elem)-1]
		if a.mask[lastIdx].Class != ClassLiteral {
			break
		}
		allLiterals := true
		for _, mi := range a.elem {
			if a.mask[mi].Class != ClassLiteral {
				allLiterals = false
				break
			}
		}
		a.pop()
		removed++
		if allLiterals {
			continue
		}
		if len(a.buf) > 0 && a.mask[a.elem[len(a.elem)-1]].Class == ClassLiteral {
			continue
		}
		break
	}
	return removed
}

// Satisfied reports whether every required element has met its minimum.
func (a *Automaton) Satisfied() bool {
	counts := make([]int, len(a.mask))
	for _, mi := range a.elem {
		counts[mi]++
	}
	for i, e := range a.mask {
		if e.Class == ClassLiteral {
			continue
		}
		if counts[i] < e.Quant.min() {
			return false
		}
	}
	return true
}

// HasUnbounded reports whether any element can grow without limit. Such
// masks never complete on their own; Enter submits them.
func (a *Automaton) HasUnbounded() bool {
	for _, e := range a.mask {
		if e.Quant.unbounded() {
			return true
		}
	}
	return false
}

// Complete reports whether a fixed-width field is full.
func (a *Automaton) Complete() bool {
	if a.HasUnbounded() {
		return false
	}
	if len(a.elem) == 0 {
		return len(a.mask) == 0 || a.allLiterals()
	}
	if len(a.buf) >= len(a.mask) && a.allOne() {
		return true
	}
	idx, count := a.state()
	if idx == len(a.mask)-1 && count >= 1 && a.mask[idx].Quant == QuantOne {
		return a.Satisfied()
	}
	return false
}

func (a *Automaton) allOne() bool {
	for _, e := range a.mask {
		if e.Quant != QuantOne {
			return false
		}
	}
	return true
}

func (a *Automaton) allLiterals() bool {
	for _, e := range a.mask {
		if e.Class != ClassLiteral {
			return false
		}
	}
	return true
}
