package date

import "fmt"

// Range represents a range of dates, boundaries included.
// A zero From or To leaves that side of the range open.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// IsOpen reports whether the range has no boundary at all.
func (r Range) IsOpen() bool { return r.From.IsZero() && r.To.IsZero() }

// ParseRange parses optional from and to dates. Empty strings leave the
// corresponding side open.
func ParseRange(from, to string) (Range, error) {
	var r Range
	var err error
	if from != "" {
		if r.From, err = Parse(from); err != nil {
			return Range{}, err
		}
	}
	if to != "" {
		if r.To, err = Parse(to); err != nil {
			return Range{}, err
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return Range{}, fmt.Errorf("invalid range: %s is before %s", r.To, r.From)
	}
	return r, nil
}

func (r Range) String() string {
	switch {
	case r.IsOpen():
		return "all dates"
	case r.From.IsZero():
		return "until " + r.To.String()
	case r.To.IsZero():
		return "since " + r.From.String()
	default:
		return fmt.Sprintf("%s to %s", r.From, r.To)
	}
}
