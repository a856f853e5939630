package datemath_test

import (
	"errors"
	"testing"
	"time"

	"ai-task-manager/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}

	if p := datemath.NewParserInLocation(nil); p.Location() != time.UTC {
		t.Errorf("expected nil location to default to UTC, got %v", p.Location())
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		relative string
		want     time.Time
		wantErr  bool
	}{
		{name: "Today", relative: "today", want: startOfBase},
		{name: "Tomorrow", relative: "Tomorrow ", want: startOfBase.AddDate(0, 0, 1)},
		{name: "Yesterday", relative: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "Next week", relative: "next week", want: startOfBase.AddDate(0, 0, 7)},
		{name: "In 3 days", relative: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "In 2 weeks", relative: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "In 1 month", relative: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "Invalid duration pattern", relative: "in a few days", want: baseTime, wantErr: true},
		{name: "Next Monday (from Wed)", relative: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{name: "Next Wednesday (from Wed)", relative: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "Unknown phrase", relative: "some random day", want: baseTime, wantErr: true},
		{name: "Invalid Next Weekday", relative: "next funday", want: baseTime, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.relative, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDueDate(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	parser := datemath.NewParserInLocation(loc)
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, loc)

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "RFC3339 with offset", raw: "2024-05-03T09:00:00Z", want: time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)},
		{name: "RFC3339 millis", raw: "2024-05-03T09:00:00.000Z", want: time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)},
		{name: "Zone-less timestamp uses parser location", raw: "2024-05-03T09:00:00", want: time.Date(2024, 5, 3, 9, 0, 0, 0, loc)},
		{name: "Bare date", raw: "2024-05-03", want: time.Date(2024, 5, 3, 0, 0, 0, 0, loc)},
		{name: "Relative phrase", raw: "tomorrow", want: time.Date(2024, 5, 2, 0, 0, 0, 0, loc)},
		{name: "Empty", raw: "  ", wantErr: true},
		{name: "Garbage", raw: "whenever", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ParseDueDate(tt.raw, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDueDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, datemath.ErrUnrecognized) {
					t.Errorf("expected ErrUnrecognized, got %v", err)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDueDate() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartOfDayUsesParserLocation(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	parser := datemath.NewParserInLocation(loc)

	// 20:00 UTC on May 1 is already May 2 in ICT.
	got := parser.StartOfDay(time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC))
	want := time.Date(2024, 5, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() got = %v, want %v", got, want)
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	got := parser.EndOfDay(base)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}
