package survey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetric_MarshalJSON(t *testing.T) {
	defined, err := json.Marshal(Num(1.581))
	require.NoError(t, err)
	assert.Equal(t, "1.581", string(defined))

	undefined, err := json.Marshal(None())
	require.NoError(t, err)
	assert.Equal(t, `"-"`, string(undefined))
}

func TestStatsRecord_JSONKeys(t *testing.T) {
	record := StatsRecord{
		Question: "Q1",
		N:        3,
		Mean:     Num(3),
		StdDev:   Num(0),
		Median:   Num(3),
		Skewness: None(),
		Kurtosis: None(),
		KSStat:   None(),
		KSPValue: None(),
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Report-layout keys, including the two with spaces.
	for _, key := range []string{"question", "N", "AS", "SD", "Median", "Ske", "Kur", "Max D", "K-S p"} {
		assert.Contains(t, decoded, key)
	}
	assert.JSONEq(t, `"-"`, string(decoded["Ske"]))
	assert.JSONEq(t, `0`, string(decoded["SD"]))
}

func TestResult_RoundTrip(t *testing.T) {
	original := Result{
		Overall: []StatsRecord{
			{Question: "Q1", N: 5, Mean: Num(3), StdDev: Num(1.581), Median: Num(3),
				Skewness: Num(0), Kurtosis: Num(-1.3), KSStat: Num(0.136), KSPValue: Num(1)},
			{Question: "Q2", N: 3, Mean: Num(3), StdDev: Num(0), Median: Num(3),
				Skewness: None(), Kurtosis: None(), KSStat: None(), KSPValue: None()},
		},
		Grouped: map[string]map[string][]StatsRecord{
			"group_0": {
				"A": {{Question: "Q1", N: 2, Mean: Num(4.5), StdDev: Num(0.707), Median: Num(4.5),
					Skewness: None(), Kurtosis: None(), KSStat: None(), KSPValue: None()}},
			},
		},
		Groupings: map[string]GroupingInfo{
			"group_0": {Label: "Dob", Column: "Dob", Values: []string{"A", "B"}},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Question order, group keys, numeric values and undefined markers all
	// survive the round trip.
	assert.Equal(t, original, decoded)
}
