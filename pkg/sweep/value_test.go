package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"0.2*pip", "0.2*pip"},
		{true, "true"},
		{false, "false"},
		{3, "3"},
		{int64(120), "120"},
		{1.0, "1.0"},
		{0.0, "0.0"},
		{0.60, "0.6"},
		{2.2, "2.2"},
		{float32(0.5), "0.5"},
		{100.0, "100.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in), "FormatValue(%#v)", tt.in)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"50", 50},
		{"0", 0},
		{"1.0", 1.0},
		{"0.6", 0.6},
		{"true", true},
		{"false", false},
		{"XAUUSD", "XAUUSD"},
		{"2.0*pipPoints", "2.0*pipPoints"},
		{"NaN", "NaN"},
		{"True", "True"},
		{"1", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseValue(tt.in), "ParseValue(%q)", tt.in)
	}
}
