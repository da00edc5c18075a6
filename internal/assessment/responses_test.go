package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int
		wantErr  bool
	}{
		{name: "letter A", input: "A", expected: 1},
		{name: "letter B", input: "B", expected: 0},
		{name: "lowercase with spaces", input: "  a ", expected: 1},
		{name: "string one", input: "1", expected: 1},
		{name: "string zero", input: "0", expected: 0},
		{name: "int one", input: 1, expected: 1},
		{name: "int zero", input: 0, expected: 0},
		{name: "json number", input: float64(1), expected: 1},
		{name: "bool true", input: true, expected: 1},
		{name: "bool false", input: false, expected: 0},
		{name: "int two", input: 2, wantErr: true},
		{name: "fractional", input: 0.5, wantErr: true},
		{name: "letter C", input: "C", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "nil", input: nil, wantErr: true},
		{name: "list", input: []any{"A"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswer(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidResponseValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseResponses(t *testing.T) {
	t.Run("missing keys default to B", func(t *testing.T) {
		rv, err := ParseResponses(map[string]any{"0": "A", "19": 1})
		require.NoError(t, err)
		assert.Equal(t, 1, rv[0])
		assert.Equal(t, 1, rv[19])
		for i := 1; i < 19; i++ {
			assert.Equal(t, 0, rv[i], "index %d", i)
		}
	})

	t.Run("empty map is all zero", func(t *testing.T) {
		rv, err := ParseResponses(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, ResponseVector{}, rv)
	})

	t.Run("nil map is all zero", func(t *testing.T) {
		rv, err := ParseResponses(nil)
		require.NoError(t, err)
		assert.Equal(t, ResponseVector{}, rv)
	})

	t.Run("out of range key fails", func(t *testing.T) {
		_, err := ParseResponses(map[string]any{"20": "A"})
		assert.ErrorIs(t, err, ErrInvalidResponseValue)
	})

	t.Run("non numeric key fails", func(t *testing.T) {
		_, err := ParseResponses(map[string]any{"q1": "A"})
		assert.ErrorIs(t, err, ErrInvalidResponseValue)
	})

	nonCanonical := []struct {
		name string
		raw  map[string]any
	}{
		{"leading zero", map[string]any{"03": "A"}},
		{"plus sign", map[string]any{"+3": "A"}},
		{"surrounding space", map[string]any{" 3": "A"}},
		{"negative zero", map[string]any{"-0": "A"}},
		{"aliases of one question", map[string]any{"3": "A", "03": "B", "+3": "B", " 3": "B"}},
	}
	for _, tt := range nonCanonical {
		t.Run("non canonical key fails: "+tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				_, err := ParseResponses(tt.raw)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidResponseValue)
			}
		})
	}

	t.Run("bad value names the question", func(t *testing.T) {
		_, err := ParseResponses(map[string]any{"7": "maybe"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidResponseValue)
		assert.Contains(t, err.Error(), "question 7")
	})
}

func TestFromLettersAndMap(t *testing.T) {
	rv, err := FromLetters([]string{"A", "B", "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, rv[0])
	assert.Equal(t, 0, rv[1])
	assert.Equal(t, 1, rv[2])

	m := rv.Map()
	assert.Len(t, m, QuestionCount)
	assert.Equal(t, 1, m["2"])
	assert.Equal(t, 0, m["19"])
}
