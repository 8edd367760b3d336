package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "Simple",
			err:  New(ErrCodeInvalidConfig, "empty tier list"),
			want: "INVALID_CONFIGURATION: empty tier list",
		},
		{
			name: "WithTier",
			err:  New(ErrCodeInvalidConfig, "row widths shorter than row count").AtTier(2),
			want: "INVALID_CONFIGURATION: tier 2: row widths shorter than row count",
		},
		{
			name: "WithTierAndRow",
			err:  New(ErrCodeDegenerateGeometry, "riser solve denominator near zero").AtTier(1).AtRow(4),
			want: "DEGENERATE_GEOMETRY: tier 1 row 4: riser solve denominator near zero",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidProfile, fmt.Errorf("unexpected token"), "decode section.toml"),
			want: "INVALID_PROFILE: decode section.toml: unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDegenerateGeometry, "denominator near zero").AtTier(0).AtRow(3)

	if !Is(err, ErrCodeDegenerateGeometry) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInvalidConfig) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeDegenerateGeometry) {
		t.Error("Is() = true for plain error")
	}
}

func TestIsWrapped(t *testing.T) {
	inner := New(ErrCodeInvalidConfig, "non-positive row count").AtTier(1)
	outer := fmt.Errorf("synthesize: %w", inner)

	if !Is(outer, ErrCodeInvalidConfig) {
		t.Error("Is() should unwrap through fmt.Errorf chains")
	}
	if got := GetCode(outer); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidConfig)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeInternal, cause, "wrapped")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidUnits, "unknown units %q", "furlong")
	if got := UserMessage(err); got != `unknown units "furlong"` {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestGetCodeMissing(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestTierOnlyFormatting(t *testing.T) {
	err := New(ErrCodeSequencing, "first tier anchored to previous tier").AtTier(0)
	if !strings.Contains(err.Error(), "tier 0:") {
		t.Errorf("Error() = %q, want tier prefix", err.Error())
	}
	if strings.Contains(err.Error(), "row") {
		t.Errorf("Error() = %q, should not mention row", err.Error())
	}
}
