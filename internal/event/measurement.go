package event

import (
	"fmt"
	"strconv"
	"strings"
)

// MeasurementCategory says how a discipline's raw measurement reads: as a
// duration (seconds) or as a distance (meters).
type MeasurementCategory string

const (
	CategoryDuration MeasurementCategory = "duration"
	CategoryDistance MeasurementCategory = "distance"
)

// Category returns the measurement category for the discipline.
func (t EventType) Category() MeasurementCategory {
	if t == TypeRunning {
		return CategoryDuration
	}
	return CategoryDistance
}

// Measurement is a parsed, comparable measurement. Value is seconds for
// durations and meters for distances; Raw keeps the text as entered.
type Measurement struct {
	Raw      string
	Category MeasurementCategory
	Value    float64
}

// Better reports whether m beats other under its category's direction:
// smaller duration wins, larger distance wins. Categories must match.
func (m Measurement) Better(other Measurement) bool {
	if m.Category == CategoryDuration {
		return m.Value < other.Value
	}
	return m.Value > other.Value
}

// ParseError describes a measurement string that could not be parsed.
type ParseError struct {
	Raw      string
	Category MeasurementCategory
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s measurement %q: %s", e.Category, e.Raw, e.Reason)
}

// ParseMeasurement parses free-text input for the given discipline.
//
// Durations accept plain seconds with an optional unit ("12.8", "12.8s",
// "12.8 sec") or a minutes:seconds form ("1:02.5"). Distances accept a
// number with an optional meter unit ("5.10", "5.10m", "5.10 m"). A comma
// decimal separator is accepted in both. Blank or malformed input returns
// a *ParseError rather than being coerced to a sentinel value.
func ParseMeasurement(raw string, t EventType) (Measurement, error) {
	category := t.Category()
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Measurement{}, &ParseError{Raw: raw, Category: category, Reason: "empty measurement"}
	}

	normalized := strings.ToLower(trimmed)
	normalized = strings.ReplaceAll(normalized, ",", ".")

	var value float64
	var err error
	if category == CategoryDuration {
		value, err = parseDuration(normalized)
	} else {
		value, err = parseDistance(normalized)
	}
	if err != nil {
		return Measurement{}, &ParseError{Raw: raw, Category: category, Reason: err.Error()}
	}
	if value < 0 {
		return Measurement{}, &ParseError{Raw: raw, Category: category, Reason: "negative value"}
	}

	return Measurement{Raw: trimmed, Category: category, Value: value}, nil
}

// parseDuration converts a normalized duration string into seconds.
func parseDuration(s string) (float64, error) {
	for _, suffix := range []string{"secs", "sec", "s"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}
	if s == "" {
		return 0, fmt.Errorf("no numeric portion")
	}

	// minutes:seconds form, e.g. "1:02.5"
	if minutes, seconds, found := strings.Cut(s, ":"); found {
		m, err := strconv.Atoi(minutes)
		if err != nil || m < 0 {
			return 0, fmt.Errorf("invalid minutes %q", minutes)
		}
		sec, err := strconv.ParseFloat(seconds, 64)
		if err != nil || sec < 0 || sec >= 60 {
			return 0, fmt.Errorf("invalid seconds %q", seconds)
		}
		return float64(m)*60 + sec, nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return value, nil
}

// parseDistance converts a normalized distance string into meters.
func parseDistance(s string) (float64, error) {
	for _, suffix := range []string{"meters", "meter", "mtr", "m"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}
	if s == "" {
		return 0, fmt.Errorf("no numeric portion")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return value, nil
}
