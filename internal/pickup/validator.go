package pickup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bistrot-counter/internal/model"

	"github.com/rs/zerolog"
)

// ValidatorConfig holds configuration for the pickup time validator.
type ValidatorConfig struct {
	// OpenHour is the first hour pickups are accepted, inclusive.
	OpenHour int

	// CloseHour is the hour pickups stop being accepted, exclusive.
	CloseHour int

	// MinLeadMinutes is the minimum preparation time between placing an
	// order and picking it up.
	MinLeadMinutes int
}

// DefaultValidatorConfig returns the default validator configuration.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		OpenHour:       7,
		CloseHour:      18,
		MinLeadMinutes: 30,
	}
}

// Validator checks requested pickup times against business hours and the
// minimum lead time.
type Validator struct {
	config *ValidatorConfig
	logger zerolog.Logger

	errOutsideHours     *model.DomainError
	errInsufficientLead *model.DomainError
}

// NewValidator creates a new pickup time validator.
func NewValidator(config *ValidatorConfig, logger zerolog.Logger) *Validator {
	if config == nil {
		config = DefaultValidatorConfig()
	}

	return &Validator{
		config: config,
		logger: logger.With().Str("component", "pickup-validator").Logger(),
		errOutsideHours: model.NewDomainError(
			model.ErrCodeOutsideHours,
			fmt.Sprintf("Pickups are possible between %02d:00 and %02d:00", config.OpenHour, config.CloseHour),
		),
		errInsufficientLead: model.NewDomainError(
			model.ErrCodeInsufficientLead,
			fmt.Sprintf("Please allow at least %d minutes of preparation time", config.MinLeadMinutes),
		),
	}
}

// Validate checks a requested "HH:MM" pickup time against now and returns
// the accepted time in canonical zero-padded form. Rules are applied in
// order: format, business hours, then lead time. The lead-time rule
// combines today's date with the requested time and compares the full
// instant against now plus the minimum lead, so requests crossing an hour
// boundary are judged correctly. A requested time is always interpreted as
// today.
func (v *Validator) Validate(requested string, now time.Time) (string, error) {
	hour, minute, err := parseClock(requested)
	if err != nil {
		v.logger.Debug().Str("requested", requested).Msg("pickup time failed to parse")
		return "", model.ErrInvalidTimeFormat
	}

	if hour < v.config.OpenHour || hour >= v.config.CloseHour {
		v.logger.Debug().
			Str("requested", requested).
			Int("open_hour", v.config.OpenHour).
			Int("close_hour", v.config.CloseHour).
			Msg("pickup time outside business hours")
		return "", v.errOutsideHours
	}

	pickupAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	earliest := now.Add(time.Duration(v.config.MinLeadMinutes) * time.Minute)
	if pickupAt.Before(earliest) {
		v.logger.Debug().
			Str("requested", requested).
			Time("earliest", earliest).
			Msg("pickup time does not allow enough preparation time")
		return "", v.errInsufficientLead
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// parseClock parses an "HH:MM" wall-clock string. One- or two-digit fields
// are accepted; out-of-range values are a format error.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}

	hour, err = parseClockField(parts[0], 23)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour: %w", err)
	}

	minute, err = parseClockField(parts[1], 59)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute: %w", err)
	}

	return hour, minute, nil
}

func parseClockField(s string, max int) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("field %q must be one or two digits", s)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("field %q is not a number", s)
	}

	if n < 0 || n > max {
		return 0, fmt.Errorf("field %q out of range", s)
	}

	return n, nil
}
