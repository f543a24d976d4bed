package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"500", 500},
		{"5k", 5_000},
		{"500k", 500_000},
		{"80 ming", 80_000},
		{"80ming", 80_000},
		{"2m", 2_000_000},
		{"3 mln", 3_000_000},
		{"1 milliard", 1_000_000_000},
		{"100 000", 100_000},
		{"5 тыс.", 5_000},
		{"1.5 млн", 1_500_000},
		{"Ming", 0}, // no digits
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.want == 0 {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(got.Truncate(0)), "expected integral result for %q", tt.in)
			assert.Equal(t, tt.want, got.IntPart())
		})
	}
}

func TestParseAmountFractional(t *testing.T) {
	got, err := ParseAmount("1.2mln")
	require.NoError(t, err)
	assert.Equal(t, int64(1_200_000), got.IntPart())

	got, err = ParseAmount("1,2 ming")
	require.NoError(t, err)
	assert.Equal(t, "1200", got.String())
}

func TestParseAmountErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "5 soat", "12.5.3"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}
