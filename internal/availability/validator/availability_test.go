package validator

import (
	"testing"

	"stagetime/pkg/logger"
	"stagetime/pkg/model"
)

func newValidator() *AvailabilityValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewAvailabilityValidator(log)
}

func TestValidateSpec(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		spec    *model.UnavailabilitySpec
		wantErr bool
	}{
		{
			name: "all day",
			spec: &model.UnavailabilitySpec{AllDay: true},
		},
		{
			name: "single range",
			spec: &model.UnavailabilitySpec{
				Ranges: []model.ClockRange{{StartTime: "09:00", EndTime: "17:00"}},
			},
		},
		{
			name: "empty spec clears the date",
			spec: &model.UnavailabilitySpec{},
		},
		{
			name: "all day with ranges",
			spec: &model.UnavailabilitySpec{
				AllDay: true,
				Ranges: []model.ClockRange{{StartTime: "09:00", EndTime: "17:00"}},
			},
			wantErr: true,
		},
		{
			name: "inverted range",
			spec: &model.UnavailabilitySpec{
				Ranges: []model.ClockRange{{StartTime: "17:00", EndTime: "09:00"}},
			},
			wantErr: true,
		},
		{
			name: "zero-length range",
			spec: &model.UnavailabilitySpec{
				Ranges: []model.ClockRange{{StartTime: "09:00", EndTime: "09:00"}},
			},
			wantErr: true,
		},
		{
			name: "malformed clock",
			spec: &model.UnavailabilitySpec{
				Ranges: []model.ClockRange{{StartTime: "9am", EndTime: "5pm"}},
			},
			wantErr: true,
		},
		{
			name: "missing end time",
			spec: &model.UnavailabilitySpec{
				Ranges: []model.ClockRange{{StartTime: "09:00"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSpec(tt.spec)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateEntry(t *testing.T) {
	v := newValidator()

	valid := &model.UnavailabilityEntry{
		OwnerID:   "artist-1",
		Date:      "2026-03-15",
		StartTime: "14:00",
		EndTime:   "17:00",
	}
	if err := v.ValidateEntry(valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	allDay := &model.UnavailabilityEntry{
		OwnerID: "artist-1",
		Date:    "2026-03-15",
		AllDay:  true,
	}
	if err := v.ValidateEntry(allDay); err != nil {
		t.Errorf("all-day entry needs no times, got %v", err)
	}

	tests := []struct {
		name  string
		entry *model.UnavailabilityEntry
	}{
		{
			name:  "missing owner",
			entry: &model.UnavailabilityEntry{Date: "2026-03-15", AllDay: true},
		},
		{
			name:  "bad date",
			entry: &model.UnavailabilityEntry{OwnerID: "artist-1", Date: "03/15/2026", AllDay: true},
		},
		{
			name:  "partial entry without times",
			entry: &model.UnavailabilityEntry{OwnerID: "artist-1", Date: "2026-03-15"},
		},
		{
			name:  "bad clock time",
			entry: &model.UnavailabilityEntry{OwnerID: "artist-1", Date: "2026-03-15", StartTime: "2pm", EndTime: "17:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateEntry(tt.entry); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
