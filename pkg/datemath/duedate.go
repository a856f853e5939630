package datemath

import "time"

// ValidateDueDate returns candidate unchanged when it is on or after today's
// local midnight, otherwise tomorrow's midnight.
func (p *Parser) ValidateDueDate(candidate, now time.Time) time.Time {
	today := p.StartOfDay(now)
	if candidate.Before(today) {
		return today.AddDate(0, 0, 1)
	}
	return candidate
}

// SuggestDueDate returns the earliest known due date that is today or later,
// or tomorrow's midnight when there is none. Nil entries are skipped.
// Ties may resolve to any of the equal dates.
func (p *Parser) SuggestDueDate(dates []*time.Time, now time.Time) time.Time {
	today := p.StartOfDay(now)

	var nearest *time.Time
	for _, d := range dates {
		if d == nil || d.Before(today) {
			continue
		}
		if nearest == nil || d.Before(*nearest) {
			nearest = d
		}
	}

	if nearest == nil {
		return today.AddDate(0, 0, 1)
	}
	return *nearest
}
