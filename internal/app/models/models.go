package models

// Quarter represents the academic quarter an offering was taught in.
type Quarter string

// Quarter constants
const (
	QuarterFall   Quarter = "FALL"
	QuarterWinter Quarter = "WINTER"
	QuarterSpring Quarter = "SPRING"
	QuarterSummer Quarter = "SUMMER"
)

// Rank orders quarters within a calendar year. Fall is the latest quarter of
// the year, so "year DESC, rank DESC" yields newest-first offering order.
func (q Quarter) Rank() int {
	switch q {
	case QuarterWinter:
		return 1
	case QuarterSpring:
		return 2
	case QuarterSummer:
		return 3
	case QuarterFall:
		return 4
	default:
		return 0
	}
}

// IsValid reports whether q is one of the known quarters.
func (q Quarter) IsValid() bool {
	return q.Rank() != 0
}
