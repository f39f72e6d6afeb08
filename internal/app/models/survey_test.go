package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionJSONPreservesOrder(t *testing.T) {
	raw := `{"3 or fewer":2,"4 - 7":5,"8 - 11":1}`

	var d Distribution
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	require.Len(t, d, 3)
	assert.Equal(t, Bin{Label: "3 or fewer", Count: 2}, d[0])
	assert.Equal(t, Bin{Label: "4 - 7", Count: 5}, d[1])
	assert.Equal(t, Bin{Label: "8 - 11", Count: 1}, d[2])

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	// Byte equality matters too: key order is part of the contract.
	assert.Equal(t, raw, string(out))
}

func TestDistributionJSONRejectsNegativeCounts(t *testing.T) {
	var d Distribution
	err := json.Unmarshal([]byte(`{"1":-3}`), &d)
	assert.Error(t, err)
}

func TestDistributionJSONRejectsNonNumericCounts(t *testing.T) {
	var d Distribution
	err := json.Unmarshal([]byte(`{"1":"many"}`), &d)
	assert.Error(t, err)
}

func TestDistributionTotalAndAdd(t *testing.T) {
	var d Distribution
	d = d.Add("4 - 7", 2)
	d = d.Add("8 - 11", 1)
	d = d.Add("4 - 7", 3)

	assert.Equal(t, 6, d.Total())
	require.Len(t, d, 2)
	assert.Equal(t, Bin{Label: "4 - 7", Count: 5}, d[0])
}

func TestQuarterRankOrdersWithinYear(t *testing.T) {
	assert.Greater(t, QuarterFall.Rank(), QuarterSummer.Rank())
	assert.Greater(t, QuarterSummer.Rank(), QuarterSpring.Rank())
	assert.Greater(t, QuarterSpring.Rank(), QuarterWinter.Rank())
	assert.False(t, Quarter("AUTUMN").IsValid())
}

func TestOfferingSatisfiesAny(t *testing.T) {
	offering := Offering{RequirementIDs: []int64{2, 5}}
	assert.True(t, offering.SatisfiesAny(nil))
	assert.True(t, offering.SatisfiesAny([]int64{5, 9}))
	assert.False(t, offering.SatisfiesAny([]int64{1, 3}))
}
