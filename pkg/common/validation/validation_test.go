package validation

import (
	"testing"

	"github.com/vnykmshr/runstats/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		module    string
		field     string
		value     int
		wantError bool
	}{
		{"positive value", "test", "channels", 10, false},
		{"positive value 1", "test", "channels", 1, false},
		{"zero value", "test", "channels", 0, true},
		{"negative value", "test", "channels", -1, true},
		{"large positive", "test", "channels", 1000000, false},
		{"large negative", "test", "channels", -1000000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive(tt.module, tt.field, tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantError bool
	}{
		{"positive value", 10.5, false},
		{"zero value", 0.0, false},
		{"negative value", -1.5, true},
		{"small positive", 0.001, false},
		{"small negative", -0.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("test", "ttl", tt.value)

			if tt.wantError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("test", "sink", nil); err == nil {
		t.Error("expected error for nil value")
	}
	if err := ValidateNotNil("test", "sink", struct{}{}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("test", "key", ""); err == nil {
		t.Error("expected error for empty string")
	}
	if err := ValidateNotEmpty("test", "key", "runstats:global"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateIndexInRange(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		length    int
		wantError bool
	}{
		{"first index", 0, 4, false},
		{"last index", 3, 4, false},
		{"past end", 4, 4, true},
		{"negative", -1, 4, true},
		{"empty range", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIndexInRange("test", "channel", tt.index, tt.length)

			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
