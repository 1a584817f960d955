package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericString_NonDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "letters", value: "12345abcde"},
		{name: "space", value: "12345 6789"},
		{name: "plus prefix", value: "+123456789"},
		{name: "dash", value: "123-456-78"},
		{name: "unicode digits", value: "１２３４５６７８９０"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := NumericString(tt.value, 10)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotNumeric)
		})
	}
}

func TestNumericString_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{name: "too short", value: "123456789", wantErr: ErrWrongLength},
		{name: "too long", value: "12345678901", wantErr: ErrWrongLength},
		{name: "empty", value: "", wantErr: ErrWrongLength},
		{name: "exact", value: "1234567890", wantErr: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := NumericString(tt.value, 10)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNumericString_NoLengthRequirement(t *testing.T) {
	t.Parallel()

	require.NoError(t, NumericString("12", 0))
	require.NoError(t, NumericString("123456789012345", 0))
	assert.ErrorIs(t, NumericString("12a", 0), ErrNotNumeric)
}

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "plain", value: "jan.kowalski@example.com", valid: true},
		{name: "plus tag", value: "jan+shop@example.com", valid: true},
		{name: "no at", value: "jan.example.com", valid: false},
		{name: "no domain", value: "jan@", valid: false},
		{name: "display name form", value: "Jan <jan@example.com>", valid: false},
		{name: "empty", value: "", valid: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Email(tt.value)
			if tt.valid {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			}
		})
	}
}

func TestErrors_CollectsAll(t *testing.T) {
	t.Parallel()

	errs := Errors{
		&FieldError{Field: "email", Err: ErrMissing},
		&FieldError{Field: "phone_number", Err: ErrNotNumeric},
	}

	msg := errs.Error()
	assert.Contains(t, msg, "email")
	assert.Contains(t, msg, "phone_number")
}
