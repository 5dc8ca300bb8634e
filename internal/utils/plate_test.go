package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc1234", "ABC1234"},
		{" abc-1234 ", "ABC1234"},
		{"AbC 12.34", "ABC1234"},
		{"", ""},
		{"---", ""},
		{"brå-1234", "BR1234"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePlate(tc.in), "input %q", tc.in)
	}
}
