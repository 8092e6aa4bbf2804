package review

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var intervalTokenRe = regexp.MustCompile(`^(\d+)([hd])$`)

// DefaultInterval is used in hours when a strategy is missing or its rule yields nothing.
const DefaultInterval = 24

// maxIntervalHours is the largest offset time.Duration can represent.
const maxIntervalHours = math.MaxInt64 / int64(time.Hour)

var (
	ErrEmptyRule        = errors.New("review: interval rule has no valid token")
	ErrInvalidToken     = errors.New("review: invalid interval token")
	ErrRuleNotAscending = errors.New("review: interval rule is not strictly ascending")
)

// ParseIntervalRule turns a rule such as "1h,3h,1d" into hour offsets [1 3 24].
// Tokens must match <digits><h|d> exactly and describe a positive offset that fits
// in a time.Duration; anything else is dropped.
func ParseIntervalRule(rule string) []int {
	var hours []int
	for _, tok := range strings.Split(rule, ",") {
		if h, ok := parseToken(tok); ok {
			hours = append(hours, h)
		}
	}
	return hours
}

func parseToken(tok string) (int, bool) {
	m := intervalTokenRe.FindStringSubmatch(tok)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	if m[2] == "d" {
		if n > maxIntervalHours/24 {
			return 0, false
		}
		n *= 24
	}
	if n > maxIntervalHours {
		return 0, false
	}
	return int(n), true
}

// ValidateIntervalRule is the stricter check applied before a rule is stored: every
// token must parse and offsets must be strictly ascending.
func ValidateIntervalRule(rule string) error {
	if strings.TrimSpace(rule) == "" {
		return ErrEmptyRule
	}
	prev := 0
	for _, tok := range strings.Split(rule, ",") {
		h, ok := parseToken(tok)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidToken, tok)
		}
		if h <= prev {
			return fmt.Errorf("%w: %q after %dh", ErrRuleNotAscending, tok, prev)
		}
		prev = h
	}
	return nil
}

// intervalAt returns the offset for the given repetition, reusing the last entry once
// repetitions run past the table.
func intervalAt(hours []int, reviewedTimes int) int {
	if len(hours) == 0 {
		return DefaultInterval
	}
	idx := reviewedTimes
	if idx < 0 {
		idx = 0
	}
	if idx > len(hours)-1 {
		idx = len(hours) - 1
	}
	return hours[idx]
}
