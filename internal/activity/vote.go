package activity

// Tally accumulates per-category votes over one batch of samples.
type Tally [NumCategories]int

// Add increments the slot of every index whose score equals the maximum of
// the vector, not just the first. A sample whose leaf scores tie at the max
// therefore contributes more than one vote; that is the voting contract,
// and downstream consumers must not assume the tally sums to the sample
// count.
func (t *Tally) Add(score [NumCategories]float64) {
	maxval := score[0]
	for _, s := range score[1:] {
		if s > maxval {
			maxval = s
		}
	}
	for i, s := range score {
		if s == maxval {
			t[i]++
		}
	}
}

// Winner resolves the batch to the lowest category index achieving the
// maximum tally (first match wins on ties).
func (t *Tally) Winner() int {
	maxcat := t[0]
	for _, c := range t[1:] {
		if c > maxcat {
			maxcat = c
		}
	}
	for i, c := range t {
		if c == maxcat {
			return i
		}
	}
	return 0
}
