package assessment

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidResponseValue reports a response that is neither a binary
	// encoding nor the letters A/B, or a key outside the question range.
	ErrInvalidResponseValue = errors.New("invalid response value")
	// ErrInvalidInput reports axis scores that do not cover every axis.
	ErrInvalidInput = errors.New("invalid input")
)

// ParseResponses converts raw request responses into a ResponseVector.
// Keys are canonical stringified question indices. Missing keys count as B (0).
func ParseResponses(raw map[string]any) (ResponseVector, error) {
	var rv ResponseVector

	for key, value := range raw {
		// Only canonical keys, so "03" or " 3" cannot alias question 3.
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= QuestionCount || strconv.Itoa(idx) != key {
			return ResponseVector{}, fmt.Errorf("%w: key %q is not a question index 0-%d", ErrInvalidResponseValue, key, QuestionCount-1)
		}

		bit, err := ParseAnswer(value)
		if err != nil {
			return ResponseVector{}, fmt.Errorf("question %d: %w", idx, err)
		}
		rv[idx] = bit
	}

	return rv, nil
}

// ParseAnswer translates a single answer to 1 (A) or 0 (B).
func ParseAnswer(value any) (int, error) {
	switch v := value.(type) {
	case string:
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "A", "1":
			return 1, nil
		case "B", "0":
			return 0, nil
		}
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case int:
		return binaryFromFloat(float64(v), value)
	case int64:
		return binaryFromFloat(float64(v), value)
	case float64:
		return binaryFromFloat(v, value)
	case float32:
		return binaryFromFloat(float64(v), value)
	}

	return 0, fmt.Errorf("%w: %v", ErrInvalidResponseValue, value)
}

func binaryFromFloat(f float64, original any) (int, error) {
	if math.IsNaN(f) || (f != 0 && f != 1) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResponseValue, original)
	}
	return int(f), nil
}

// FromLetters builds a ResponseVector from a slice of "A"/"B" answers.
func FromLetters(letters []string) (ResponseVector, error) {
	raw := make(map[string]any, len(letters))
	for i, l := range letters {
		raw[strconv.Itoa(i)] = l
	}
	return ParseResponses(raw)
}

// Map renders the vector back to the stored "index -> 0/1" form.
func (rv ResponseVector) Map() map[string]int {
	out := make(map[string]int, QuestionCount)
	for i, v := range rv {
		out[strconv.Itoa(i)] = v
	}
	return out
}
