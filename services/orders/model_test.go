package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceCents(t *testing.T) {
	testCases := []struct {
		in      string
		cents   int
		withErr bool
	}{
		{"12.99", 1299, false},
		{"0.01", 1, false},
		{"0", 0, false},
		{"599.99", 59999, false},
		{"15", 1500, false},
		{"7.5", 750, false},
		{".99", 99, false},
		{" 12.99 ", 1299, false},
		{"", 0, true},
		{"1.999", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			cents, err := ParsePriceCents(tc.in)
			if tc.withErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.cents, cents)
		})
	}
}

func TestTotalIsExact(t *testing.T) {
	// 2 x $12.99 must be exactly $25.98, with no float drift
	price, err := ParsePriceCents("12.99")
	assert.NoError(t, err)

	total := 2 * price

	assert.Equal(t, 2598, total)
	assert.Equal(t, "$25.98", FormatPriceCents(total))
}

func TestFormatPriceCents(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPriceCents(0))
	assert.Equal(t, "$0.05", FormatPriceCents(5))
	assert.Equal(t, "$12.99", FormatPriceCents(1299))
	assert.Equal(t, "$599.99", FormatPriceCents(59999))
}
