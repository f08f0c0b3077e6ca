package main

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// maxSeconds keeps second values within time.Duration range.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

func parseSeconds(src string) (float64, error) {
	val, err := strconv.ParseFloat(src, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("`%s` is not a valid number", src)
	}
	if val > maxSeconds {
		return 0, fmt.Errorf("`%s` is too large", src)
	}
	return val, nil
}

// ParsePositiveSeconds parses a delay in seconds that must be greater than 0.
func ParsePositiveSeconds(src string) (time.Duration, error) {
	val, err := parseSeconds(src)
	if err != nil {
		return 0, err
	}
	if val <= 0 {
		return 0, fmt.Errorf("`%s` must be greater than 0", src)
	}
	return secondsToDuration(val), nil
}

// ParseNonNegativeSeconds parses a delay in seconds that must be at least 0.
func ParseNonNegativeSeconds(src string) (time.Duration, error) {
	val, err := parseSeconds(src)
	if err != nil {
		return 0, err
	}
	if val < 0 {
		return 0, fmt.Errorf("`%s` must be greater than or equal to 0", src)
	}
	return secondsToDuration(val), nil
}

// ParsePositiveCount parses a sample count that must be greater than 0.
func ParsePositiveCount(src string) (int, error) {
	val, err := strconv.ParseUint(src, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("`%s` is not a valid number > 0", src)
	}
	if val == 0 {
		return 0, fmt.Errorf("`%s` must be greater than 0", src)
	}
	return int(val), nil
}

func secondsToDuration(s float64) time.Duration {
	d := time.Duration(s * float64(time.Second))
	if s > 0 && d == 0 {
		// sub-nanosecond delays still count as positive
		d = 1
	}
	return d
}
