package assessment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateAxes(t *testing.T) {
	var allA ResponseVector
	for i := range allA {
		allA[i] = 1
	}
	var mixed ResponseVector
	for _, i := range []int{0, 1, 2, 5, 10, 11, 12, 13, 14} {
		mixed[i] = 1
	}

	tests := []struct {
		name     string
		input    ResponseVector
		expected AxisScores
	}{
		{
			name:     "all A",
			input:    allA,
			expected: AxisScores{AxisStructure: 100, AxisCollaboration: 100, AxisScope: 100, AxisTempo: 100},
		},
		{
			name:     "all B",
			input:    ResponseVector{},
			expected: AxisScores{AxisStructure: 0, AxisCollaboration: 0, AxisScope: 0, AxisTempo: 0},
		},
		{
			name:     "mixed answers",
			input:    mixed,
			expected: AxisScores{AxisStructure: 60, AxisCollaboration: 20, AxisScope: 100, AxisTempo: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateAxes(tt.input, DefaultPartition())
			for _, axis := range Axes {
				assert.InDelta(t, tt.expected[axis], got[axis], 1e-9, "axis %s", axis)
			}
		})
	}
}

func TestAggregateAxesRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		var rv ResponseVector
		for i := range rv {
			rv[i] = rng.Intn(2)
		}
		scores := AggregateAxes(rv, DefaultPartition())
		assert.Len(t, scores, len(Axes))
		for axis, v := range scores {
			assert.GreaterOrEqual(t, v, 0.0, "axis %s", axis)
			assert.LessOrEqual(t, v, 100.0, "axis %s", axis)
		}
	}
}

func TestAggregateAxesCustomPartition(t *testing.T) {
	var rv ResponseVector
	rv[0], rv[4], rv[8] = 1, 1, 1
	p := Partition{
		AxisStructure:     {0, 4, 8, 12, 16},
		AxisCollaboration: {1, 5, 9, 13, 17},
		AxisScope:         {2, 6, 10, 14, 18},
		AxisTempo:         {3, 7, 11, 15, 19},
	}
	scores := AggregateAxes(rv, p)
	assert.InDelta(t, 60.0, scores[AxisStructure], 1e-9)
	assert.InDelta(t, 0.0, scores[AxisTempo], 1e-9)
}

func TestPartitionAxisOf(t *testing.T) {
	p := DefaultPartition()
	axis, ok := p.AxisOf(7)
	assert.True(t, ok)
	assert.Equal(t, AxisCollaboration, axis)

	_, ok = p.AxisOf(20)
	assert.False(t, ok)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 66.7, Round1(66.66666))
	assert.Equal(t, 40.0, Round1(40))
	assert.Equal(t, 12.3, Round1(12.34))
}
