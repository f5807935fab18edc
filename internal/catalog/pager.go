package catalog

// ScrollPager implements the cumulative reveal used by browse views: the
// visible window always starts at the top of the source list and grows by a
// fixed step each time the reader reaches the end.
type ScrollPager struct {
	initial   int
	increment int
	count     int
}

// NewScrollPager creates a pager revealing initial items up front and
// increment more per advance. Non-positive sizes fall back to 1.
func NewScrollPager(initial, increment int) *ScrollPager {
	if initial < 1 {
		initial = 1
	}
	if increment < 1 {
		increment = 1
	}
	return &ScrollPager{initial: initial, increment: increment, count: initial}
}

// Count returns the current reveal size, unclamped by any list length.
func (p *ScrollPager) Count() int { return p.count }

// Advance grows the reveal window by one step.
func (p *ScrollPager) Advance() { p.count += p.increment }

// Reset shrinks the window back to the initial size. Called whenever the
// underlying list changes, so new results start from the top.
func (p *ScrollPager) Reset() { p.count = p.initial }

// Visible returns the revealed prefix of list.
func Visible[T any](p *ScrollPager, list []T) []T {
	if p.count >= len(list) {
		return list
	}
	return list[:p.count]
}

// VisibleLen returns how many of total items are currently revealed.
func (p *ScrollPager) VisibleLen(total int) int {
	if p.count >= total {
		return total
	}
	return p.count
}

// Exhausted reports whether the whole list is revealed, meaning further
// advances would not show anything new.
func (p *ScrollPager) Exhausted(total int) bool {
	return p.count >= total
}
