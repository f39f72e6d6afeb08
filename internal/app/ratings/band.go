package ratings

// Band buckets a rating for display coloring.
type Band string

// Band constants
const (
	BandExcellent Band = "EXCELLENT"
	BandGood      Band = "GOOD"
	BandAverage   Band = "AVERAGE"
	BandPoor      Band = "POOR"
	BandVeryPoor  Band = "VERY_POOR"
	BandNone      Band = "NONE"
)

// hoursBands maps weekly time-survey buckets to bands. Fewer reported hours
// is the better band.
var hoursBands = map[string]Band{
	"3 or fewer": BandExcellent,
	"4 - 7":      BandGood,
	"8 - 11":     BandAverage,
	"12 - 15":    BandPoor,
	"16 - 19":    BandVeryPoor,
	"20 or more": BandVeryPoor,
}

// ScoreBand maps a 1-6 rating to a band. A zero (no data) rating maps to
// BandNone.
func ScoreBand(score float64) Band {
	switch {
	case score == 0:
		return BandNone
	case score >= 5.5:
		return BandExcellent
	case score >= 5.0:
		return BandGood
	case score >= 4.5:
		return BandAverage
	case score >= 4.0:
		return BandPoor
	default:
		return BandVeryPoor
	}
}

// HoursBand maps a modal time-survey bucket to a band. Unrecognized buckets,
// including ModeNone, map to BandNone.
func HoursBand(bucket string) Band {
	if band, ok := hoursBands[bucket]; ok {
		return band
	}
	return BandNone
}
