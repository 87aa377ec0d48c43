package errors

import (
	"math"
	"testing"
)

func TestValidateIndex(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		total   int
		wantErr bool
	}{
		{"first of one", 0, 1, false},
		{"last of five", 4, 5, false},
		{"middle", 2, 5, false},

		{"zero total", 0, 0, true},
		{"negative total", 0, -3, true},
		{"negative index", -1, 5, true},
		{"index == total", 5, 5, true},
		{"index > total", 9, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIndex(tt.index, tt.total)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIndex(%d, %d) error = %v, wantErr %v", tt.index, tt.total, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("ValidateIndex(%d, %d) code = %v, want %v", tt.index, tt.total, GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"positive", 56, false},
		{"fraction", 0.5, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("radius", tt.v)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidatePositive(%v) code = %v, want %v", tt.v, GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("x", -12.5); err != nil {
		t.Errorf("ValidateFinite(-12.5) = %v, want nil", err)
	}
	if err := ValidateFinite("x", math.NaN()); err == nil {
		t.Error("ValidateFinite(NaN) should fail")
	}
	if err := ValidateFinite("x", math.Inf(-1)); err == nil {
		t.Error("ValidateFinite(-Inf) should fail")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "menu.svg", false},
		{"nested", "out/menu.json", false},
		{"absolute", "/tmp/menu.png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " menu.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
