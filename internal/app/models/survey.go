package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// QuestionKey identifies a CTEC survey question. Unknown keys found in stored
// data are carried through verbatim.
type QuestionKey string

// Known survey questions
const (
	QuestionInstruction   QuestionKey = "rating_of_instruction"
	QuestionCourse        QuestionKey = "rating_of_course"
	QuestionLearned       QuestionKey = "estimated_learning"
	QuestionChallenge     QuestionKey = "intellectual_challenge"
	QuestionInterest      QuestionKey = "stimulating_instructor"
	QuestionPriorInterest QuestionKey = "prior_interest"
	QuestionTimeSurvey    QuestionKey = "time_survey"
	QuestionClassYear     QuestionKey = "class_year"
	QuestionRequirement   QuestionKey = "requirement_fulfillment"
	QuestionSchool        QuestionKey = "school_name"
)

// SurveyResponse holds the response-count histogram for one question of one
// offering.
type SurveyResponse struct {
	Question     QuestionKey  `json:"question" db:"question"`
	Distribution Distribution `json:"distribution" db:"distribution"`
}

// Bin is a single label/count pair of a distribution.
type Bin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution is an ordered response-count histogram keyed by rating label
// or bucket. Insertion order is significant: the mode tie-break picks the
// first label encountered, so reordering bins can change displayed results.
type Distribution []Bin

// Total returns the sum of all counts.
func (d Distribution) Total() int {
	total := 0
	for _, bin := range d {
		total += bin.Count
	}
	return total
}

// Add merges count into the bin with the given label, appending a new bin if
// the label is not present yet.
func (d Distribution) Add(label string, count int) Distribution {
	for i := range d {
		if d[i].Label == label {
			d[i].Count += count
			return d
		}
	}
	return append(d, Bin{Label: label, Count: count})
}

// MarshalJSON encodes the distribution as a JSON object, preserving bin order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, bin := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(bin.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", bin.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into a distribution, keeping the keys in
// the order they appear in the document. Negative counts are rejected.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("distribution: expected JSON object, got %v", tok)
	}

	var bins Distribution
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("distribution: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("distribution: count for %q is not a number", label)
		}
		count, err := num.Int64()
		if err != nil {
			return fmt.Errorf("distribution: count for %q: %w", label, err)
		}
		if count < 0 {
			return fmt.Errorf("distribution: negative count %d for %q", count, label)
		}
		bins = append(bins, Bin{Label: label, Count: int(count)})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = bins
	return nil
}
