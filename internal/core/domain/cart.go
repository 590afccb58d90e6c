package domain

// A CartLine is one product/quantity pairing in a cart.
// Quantity is always positive: a line that would drop to zero is removed.
type CartLine struct {
	ProductID int
	Quantity  int
}

// A Cart is the set of lines owned by one session context,
// either anonymous (local only) or a signed-in user.
type Cart struct {
	Lines []CartLine
}

// Count returns the sum of all line quantities.
func (c Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// NormalizeLines returns a copy of ls with quantities coerced to
// positive integers, falling back to 1. At most one line per product
// survives: a later duplicate overwrites an earlier one.
func NormalizeLines(ls []CartLine) []CartLine {
	normalized := make([]CartLine, 0, len(ls))
	idx := make(map[int]int, len(ls))
	for _, l := range ls {
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		if i, ok := idx[l.ProductID]; ok {
			normalized[i] = l
			continue
		}
		idx[l.ProductID] = len(normalized)
		normalized = append(normalized, l)
	}
	return normalized
}
