// Package ratings turns raw per-question response-count distributions into
// the single-number ratings and workload buckets shown on course and
// instructor pages. Everything here is pure; no I/O.
package ratings

import (
	"math"
	"strconv"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

// ModeNone is returned by Mode when a distribution is empty or all of its
// counts are zero.
const ModeNone = ""

// WeightedAverage computes the response-weighted mean of a distribution.
// Only bins whose label parses as a finite number contribute; other labels
// (time buckets, class standings, free text) are skipped. A distribution with
// no numeric responses yields 0.
func WeightedAverage(d models.Distribution) float64 {
	var sum float64
	var count int
	for _, bin := range d {
		value, err := strconv.ParseFloat(bin.Label, 64)
		if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
			continue
		}
		sum += value * float64(bin.Count)
		count += bin.Count
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Mode returns the label with the highest count. Ties go to the label that
// appears first in the distribution, which is why Distribution preserves
// insertion order. Returns ModeNone when there are no responses.
func Mode(d models.Distribution) string {
	best := ModeNone
	bestCount := 0
	for _, bin := range d {
		if bin.Count > bestCount {
			best = bin.Label
			bestCount = bin.Count
		}
	}
	return best
}
