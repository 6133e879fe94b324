// Package duration converts the compact duration encoding used by the
// Clockify API (e.g. "PT1H30M", "PT45S") into fractional hours.
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrMalformedDuration indicates an encoding that does not match the
// PT[nH][nM][nS] grammar.
var ErrMalformedDuration = errors.New("malformed duration")

// durationPattern matches the PT duration encoding. Hours, minutes and
// seconds are each optional but must appear in that order.
var durationPattern = regexp.MustCompile(`^PT(\d+H)?(\d+M)?(\d+S)?$`)

// Hours converts a raw duration encoding into fractional hours.
//
// A nil value means the timer is still running; running entries contribute
// zero elapsed time, which is a policy, not an error. An encoding with no
// components at all ("PT") is also zero. Anything that violates the grammar
// returns ErrMalformedDuration.
func Hours(raw *string) (float64, error) {
	if raw == nil {
		return 0, nil
	}

	matches := durationPattern.FindStringSubmatch(*raw)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, *raw)
	}

	var hours float64

	if matches[1] != "" {
		h, err := strconv.Atoi(matches[1][:len(matches[1])-1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, *raw)
		}
		hours += float64(h)
	}

	if matches[2] != "" {
		m, err := strconv.Atoi(matches[2][:len(matches[2])-1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, *raw)
		}
		hours += float64(m) / 60
	}

	if matches[3] != "" {
		s, err := strconv.Atoi(matches[3][:len(matches[3])-1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, *raw)
		}
		hours += float64(s) / 3600
	}

	return hours, nil
}
