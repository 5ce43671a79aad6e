package event

import (
	"errors"
	"math"
	"testing"
)

func TestParseMeasurementDurations(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "plain seconds", raw: "12.5", want: 12.5},
		{name: "seconds with unit", raw: "12.8s", want: 12.8},
		{name: "seconds with spaced unit", raw: "12.8 sec", want: 12.8},
		{name: "secs unit", raw: "13 secs", want: 13},
		{name: "comma decimal separator", raw: "12,8s", want: 12.8},
		{name: "minutes and seconds", raw: "1:02.5", want: 62.5},
		{name: "surrounding whitespace", raw: "  14.1s  ", want: 14.1},
		{name: "uppercase unit", raw: "12.8S", want: 12.8},
		{name: "blank", raw: "", wantErr: true},
		{name: "whitespace only", raw: "   ", wantErr: true},
		{name: "garbage", raw: "fast", wantErr: true},
		{name: "unit only", raw: "s", wantErr: true},
		{name: "negative", raw: "-3.1s", wantErr: true},
		{name: "seconds part out of range", raw: "1:75.0", wantErr: true},
		{name: "bad minutes", raw: "x:20.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMeasurement(tt.raw, TypeRunning)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMeasurement(%q) = %v, want error", tt.raw, m.Value)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("ParseMeasurement(%q) error = %T, want *ParseError", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMeasurement(%q) unexpected error: %v", tt.raw, err)
			}
			if m.Category != CategoryDuration {
				t.Errorf("category = %s, want %s", m.Category, CategoryDuration)
			}
			if math.Abs(m.Value-tt.want) > 1e-9 {
				t.Errorf("value = %v, want %v", m.Value, tt.want)
			}
		})
	}
}

func TestParseMeasurementDistances(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "plain meters", raw: "5.2", want: 5.2},
		{name: "meters with unit", raw: "5.10m", want: 5.1},
		{name: "meters with spaced unit", raw: "5.2 m", want: 5.2},
		{name: "meter word", raw: "6.05 meters", want: 6.05},
		{name: "comma decimal separator", raw: "5,40m", want: 5.4},
		{name: "blank", raw: "", wantErr: true},
		{name: "garbage", raw: "far", wantErr: true},
		{name: "unit only", raw: "m", wantErr: true},
		{name: "negative", raw: "-1.2m", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMeasurement(tt.raw, TypeLongJump)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMeasurement(%q) = %v, want error", tt.raw, m.Value)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMeasurement(%q) unexpected error: %v", tt.raw, err)
			}
			if m.Category != CategoryDistance {
				t.Errorf("category = %s, want %s", m.Category, CategoryDistance)
			}
			if math.Abs(m.Value-tt.want) > 1e-9 {
				t.Errorf("value = %v, want %v", m.Value, tt.want)
			}
		})
	}
}

func TestMeasurementBetter(t *testing.T) {
	faster := Measurement{Category: CategoryDuration, Value: 12.1}
	slower := Measurement{Category: CategoryDuration, Value: 12.9}
	if !faster.Better(slower) {
		t.Error("lower duration should win")
	}
	if slower.Better(faster) {
		t.Error("higher duration should not win")
	}

	longer := Measurement{Category: CategoryDistance, Value: 5.4}
	shorter := Measurement{Category: CategoryDistance, Value: 5.1}
	if !longer.Better(shorter) {
		t.Error("greater distance should win")
	}
	if shorter.Better(longer) {
		t.Error("smaller distance should not win")
	}
}

func TestEventTypeCategory(t *testing.T) {
	if got := TypeRunning.Category(); got != CategoryDuration {
		t.Errorf("running category = %s, want duration", got)
	}
	for _, ft := range []EventType{TypeLongJump, TypeHighJump, TypeShotPut, TypeJavelin, TypeDiscus} {
		if got := ft.Category(); got != CategoryDistance {
			t.Errorf("%s category = %s, want distance", ft, got)
		}
	}
}
