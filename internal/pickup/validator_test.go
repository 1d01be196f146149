package pickup

import (
	"testing"
	"time"

	"bistrot-counter/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(hour, minute int) time.Time {
	return time.Date(2025, time.July, 12, hour, minute, 0, 0, time.UTC)
}

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator(DefaultValidatorConfig(), zerolog.Nop())

	tests := []struct {
		name         string
		requested    string
		now          time.Time
		expectedCode string // empty means accepted
		expected     string
	}{
		{
			name:      "Accepted well within hours and lead",
			requested: "14:30",
			now:       clock(12, 0),
			expected:  "14:30",
		},
		{
			name:      "Accepted one minute past minimum lead",
			requested: "12:31",
			now:       clock(12, 0),
			expected:  "12:31",
		},
		{
			name:      "Accepted at exactly the minimum lead",
			requested: "12:30",
			now:       clock(12, 0),
			expected:  "12:30",
		},
		{
			name:      "Accepted and canonicalised",
			requested: "9:5",
			now:       clock(7, 0),
			expected:  "09:05",
		},
		{
			name:      "Accepted at opening hour",
			requested: "07:00",
			now:       clock(6, 0),
			expected:  "07:00",
		},
		{
			name:         "Rejected one minute before opening",
			requested:    "06:59",
			now:          clock(6, 0),
			expectedCode: model.ErrCodeOutsideHours,
		},
		{
			name:         "Rejected at closing hour",
			requested:    "18:00",
			now:          clock(12, 0),
			expectedCode: model.ErrCodeOutsideHours,
		},
		{
			name:         "Rejected with insufficient lead",
			requested:    "12:15",
			now:          clock(12, 0),
			expectedCode: model.ErrCodeInsufficientLead,
		},
		{
			name:         "Rejected with insufficient lead across hour boundary",
			requested:    "12:10",
			now:          clock(11, 50),
			expectedCode: model.ErrCodeInsufficientLead,
		},
		{
			name:         "Rejected when requested time already passed",
			requested:    "09:00",
			now:          clock(12, 0),
			expectedCode: model.ErrCodeInsufficientLead,
		},
		{
			name:         "Rejected out-of-range fields",
			requested:    "25:61",
			now:          clock(12, 0),
			expectedCode: model.ErrCodeInvalidTimeFormat,
		},
		{
			name:         "Rejected missing separator",
			requested:    "1230",
			now:          clock(12, 0),
			expectedCode: model.ErrCodeInvalidTimeFormat,
		},
		{
			name:         "Rejected non-numeric fields",
			requested:    "ab:cd",
			now:          clock(12, 0),
			expectedCode: model.ErrCodeInvalidTimeFormat,
		},
		{
			name:         "Rejected empty input",
			requested:    "",
			now:          clock(12, 0),
			expectedCode: model.ErrCodeInvalidTimeFormat,
		},
		{
			name:         "Rejected three-digit hour",
			requested:    "007:30",
			now:          clock(6, 0),
			expectedCode: model.ErrCodeInvalidTimeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, err := validator.Validate(tt.requested, tt.now)

			if tt.expectedCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, accepted)
				return
			}

			require.Error(t, err)
			assert.Empty(t, accepted)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.expectedCode, domainErr.Code)
		})
	}
}

// The format rules are checked before the hours rule: a malformed time is
// always a format error, never an hours rejection.
func TestValidator_Validate_RuleOrder(t *testing.T) {
	validator := NewValidator(DefaultValidatorConfig(), zerolog.Nop())

	_, err := validator.Validate("25:00", clock(12, 0))

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInvalidTimeFormat, domainErr.Code)
}

func TestValidator_Validate_CustomConfig(t *testing.T) {
	validator := NewValidator(&ValidatorConfig{
		OpenHour:       9,
		CloseHour:      12,
		MinLeadMinutes: 10,
	}, zerolog.Nop())

	accepted, err := validator.Validate("11:59", clock(9, 0))
	require.NoError(t, err)
	assert.Equal(t, "11:59", accepted)

	_, err = validator.Validate("12:00", clock(9, 0))
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeOutsideHours, domainErr.Code)

	_, err = validator.Validate("09:05", clock(9, 0))
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInsufficientLead, domainErr.Code)
}

func TestValidator_NilConfigUsesDefaults(t *testing.T) {
	validator := NewValidator(nil, zerolog.Nop())

	accepted, err := validator.Validate("12:31", clock(12, 0))
	require.NoError(t, err)
	assert.Equal(t, "12:31", accepted)
}
