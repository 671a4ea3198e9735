package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		in      string
		body    string
		percent bool
	}{
		{"45%", "45", true},
		{"12.5%", "12.5", true},
		{"3", "3", false},
		{"1%2%", "1", true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			body, isPercent := percent(tt.in)
			assert.Equal(t, tt.body, body)
			assert.Equal(t, tt.percent, isPercent)
		})
	}
}

func TestToBool(t *testing.T) {
	for _, in := range []string{"true", "True", "TRUE", " true "} {
		v, err := toBool(in)
		assert.NoError(t, err, in)
		assert.True(t, v, in)
	}
	for _, in := range []string{"1", "t", "yes", ""} {
		_, err := toBool(in)
		assert.Error(t, err, in)
	}
}
