package stopwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00.00"},
		{9, "00.00"},
		{10, "00.01"},
		{1500, "01.50"},
		{59_999, "59.99"},
		{60_000, "01:00.00"},
		{61_000, "01:01.00"},
		{754_320, "12:34.32"},
		{6_000_000, "100:00.00"},
		{-50, "00.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.ms), "ms=%d", tt.ms)
	}
}

func TestFormatFixedWidth(t *testing.T) {
	assert.Equal(t, "00.00", FormatFixedWidth(0))
	assert.Equal(t, "01.50", FormatFixedWidth(1500))
	assert.Equal(t, "01.00", FormatFixedWidth(61_000))
	assert.Len(t, FormatFixedWidth(3_599_990), 5)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	f, err = ParseFormat(" Fixed ")
	require.NoError(t, err)
	assert.Equal(t, FormatFixed, f)

	_, err = ParseFormat("hh:mm")
	require.Error(t, err)
}

func TestFormatRender(t *testing.T) {
	assert.Equal(t, "01:01.00", FormatAuto.Render(61_000))
	assert.Equal(t, "01.00", FormatFixed.Render(61_000))
}
