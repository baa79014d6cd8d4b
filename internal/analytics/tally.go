package analytics

// Tally is a label together with how often it occurred.
type Tally struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// orderedCounter counts labels and remembers the order they were first seen.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// top returns the most frequent label; ties go to the label seen first.
func (c *orderedCounter) top() *Tally {
	var best *Tally

	for _, label := range c.order {
		if best == nil || c.counts[label] > best.Count {
			best = &Tally{Label: label, Count: c.counts[label]}
		}
	}

	return best
}
