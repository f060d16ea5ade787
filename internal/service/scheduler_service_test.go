package service

import (
	"testing"
	"time"
)

func TestDailySpec(t *testing.T) {
	tests := []struct {
		at      string
		want    string
		wantErr bool
	}{
		{at: "07:00", want: "0 0 7 * * *"},
		{at: "23:59", want: "0 59 23 * * *"},
		{at: "00:00", want: "0 0 0 * * *"},
		{at: "24:00", wantErr: true},
		{at: "12:60", wantErr: true},
		{at: "noon", wantErr: true},
		{at: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			got, err := dailySpec(tt.at)
			if tt.wantErr {
				if err == nil {
					t.Errorf("dailySpec(%q) accepted invalid input", tt.at)
				}
				return
			}
			if err != nil {
				t.Fatalf("dailySpec(%q): %v", tt.at, err)
			}
			if got != tt.want {
				t.Errorf("dailySpec(%q) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestScheduleIntervalRejectsSubSecond(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	if _, err := s.ScheduleInterval("too-fast", 100*time.Millisecond, func() {}); err == nil {
		t.Error("sub-second interval was accepted")
	}
	if _, err := s.ScheduleInterval("ok", time.Second, func() {}); err != nil {
		t.Errorf("one-second interval rejected: %v", err)
	}
}
