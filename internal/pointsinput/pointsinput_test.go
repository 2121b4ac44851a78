package pointsinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "mixed letters and digits",
			raw:      "12a3",
			expected: "123",
		},
		{
			name:     "only letters",
			raw:      "abc",
			expected: "",
		},
		{
			name:     "empty",
			raw:      "",
			expected: "",
		},
		{
			name:     "punctuation and spaces",
			raw:      " 1,5 00 ",
			expected: "1500",
		},
		{
			name:     "non-ascii digits are stripped",
			raw:      "４2５",
			expected: "2",
		},
		{
			name:     "already clean",
			raw:      "0012",
			expected: "0012",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.raw))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{"12a3", "abc", "", "  77 points", "©½4"}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once))

		for _, r := range once {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestIsSubmittable(t *testing.T) {
	tests := []struct {
		buffer   string
		expected bool
	}{
		{"", false},
		{"0", false},
		{"00", false},
		{"12", true},
		{"007", true},
		{"abc", false},
		{"99999999999999999999", false},
	}

	for _, tt := range tests {
		t.Run(tt.buffer, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSubmittable(tt.buffer))
		})
	}
}

func TestAmount(t *testing.T) {
	amount, err := Amount("123")
	require.NoError(t, err)
	assert.Equal(t, 123, amount)

	_, err = Amount("0")
	require.ErrorIs(t, err, ErrNotSubmittable)

	_, err = Amount("")
	require.ErrorIs(t, err, ErrNotSubmittable)
}

func TestTypedBufferBecomesSubmittable(t *testing.T) {
	buffer := Sanitize("12a3")
	require.Equal(t, "123", buffer)
	require.True(t, IsSubmittable(buffer))

	amount, err := Amount(buffer)
	require.NoError(t, err)
	require.Equal(t, 123, amount)
}
