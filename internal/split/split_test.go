package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShares(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		n        int
		expected []int64
	}{
		{
			name:     "remainder goes to first participant",
			total:    100,
			n:        3,
			expected: []int64{34, 33, 33},
		},
		{
			name:     "zero total",
			total:    0,
			n:        2,
			expected: []int64{0, 0},
		},
		{
			name:     "no participants",
			total:    100,
			n:        0,
			expected: nil,
		},
		{
			name:     "even division has no remainder",
			total:    90000,
			n:        3,
			expected: []int64{30000, 30000, 30000},
		},
		{
			name:     "remainder spread across earliest participants",
			total:    10,
			n:        4,
			expected: []int64{3, 3, 2, 2},
		},
		{
			name:     "total smaller than head count",
			total:    2,
			n:        5,
			expected: []int64{1, 1, 0, 0, 0},
		},
		{
			name:     "negative total treated as zero",
			total:    -500,
			n:        3,
			expected: []int64{0, 0, 0},
		},
		{
			name:     "single participant takes everything",
			total:    12345,
			n:        1,
			expected: []int64{12345},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Shares(tt.total, tt.n))
		})
	}
}

func TestSharesInvariants(t *testing.T) {
	totals := []int64{0, 1, 7, 99, 100, 101, 12345, 999999, 35000}
	counts := []int{1, 2, 3, 4, 7, 10, 33}

	for _, total := range totals {
		for _, n := range counts {
			shares := Shares(total, n)
			assert.Len(t, shares, n)

			var sum, min, max int64
			min, max = shares[0], shares[0]
			for _, s := range shares {
				sum += s
				if s < min {
					min = s
				}
				if s > max {
					max = s
				}
			}

			assert.Equal(t, total, sum, "sum must equal total for total=%d n=%d", total, n)
			assert.LessOrEqual(t, max-min, int64(1), "shares must differ by at most 1 for total=%d n=%d", total, n)

			// The first total%n participants absorb the remainder.
			rem := int(total % int64(n))
			for i, s := range shares {
				if i < rem {
					assert.Equal(t, total/int64(n)+1, s)
				} else {
					assert.Equal(t, total/int64(n), s)
				}
			}
		}
	}
}

func TestSharesDeterminism(t *testing.T) {
	first := Shares(12347, 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Shares(12347, 7))
	}
}

func TestFinalAmount(t *testing.T) {
	tests := []struct {
		name      string
		share     int64
		deduction int64
		expected  int64
	}{
		{name: "no deduction", share: 5000, deduction: 0, expected: 5000},
		{name: "partial deduction", share: 5000, deduction: 1500, expected: 3500},
		{name: "deduction exceeding share floors at zero", share: 5000, deduction: 9000, expected: 0},
		{name: "deduction equal to share", share: 5000, deduction: 5000, expected: 0},
		{name: "negative deduction ignored", share: 5000, deduction: -100, expected: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FinalAmount(tt.share, tt.deduction))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{name: "plain number", input: "35000", expected: 35000},
		{name: "empty string", input: "", expected: 0},
		{name: "non-numeric", input: "abc", expected: 0},
		{name: "grouped digits", input: "1,234,567", expected: 1234567},
		{name: "currency suffix", input: "5000원", expected: 5000},
		{name: "minus sign stripped", input: "-42", expected: 42},
		{name: "whitespace", input: " 12 34 ", expected: 1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAmount(tt.input))
		})
	}
}
