package probe

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

func TestExpandRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		limit   int
		want    []string
		wantErr error
	}{
		{"single day", "2025-11-12", "2025-11-12", 0, []string{"2025-11-12"}, nil},
		{"across month", "2025-01-30", "2025-02-02", 0, []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"}, nil},
		{"leap day", "2024-02-28", "2024-03-01", 0, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, nil},
		{"at limit", "2025-11-01", "2025-11-03", 3, []string{"2025-11-01", "2025-11-02", "2025-11-03"}, nil},
		{"over limit", "2025-11-01", "2025-11-04", 3, nil, ErrTooManyDates},
		{"reversed", "2025-11-12", "2025-11-11", 0, nil, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandRange(mustDate(t, tt.start), mustDate(t, tt.end), tt.limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExpandRange() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandRange() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ExpandRange() len = %d, want %d", len(got), len(tt.want))
			}
			for i, d := range got {
				if d.Format(domain.DateLayout) != tt.want[i] {
					t.Errorf("ExpandRange()[%d] = %s, want %s", i, d.Format(domain.DateLayout), tt.want[i])
				}
			}
		})
	}
}

func TestParseDates(t *testing.T) {
	got, err := ParseDates([]string{"2025-11-13", "2025-11-12", "2025-11-13"}, 5)
	if err != nil {
		t.Fatalf("ParseDates() error = %v", err)
	}
	if len(got) != 3 || got[1].Format(domain.DateLayout) != "2025-11-12" {
		t.Errorf("ParseDates() = %v", got)
	}

	if _, err := ParseDates([]string{"12/11/2025"}, 0); err == nil {
		t.Error("ParseDates() expected error for bad layout")
	}
	if _, err := ParseDates([]string{"2025-11-12", "2025-11-13"}, 1); !errors.Is(err, ErrTooManyDates) {
		t.Errorf("ParseDates() error = %v, want ErrTooManyDates", err)
	}
	if got, err := ParseDates(nil, 1); err != nil || len(got) != 0 {
		t.Errorf("ParseDates(nil) = %v, %v", got, err)
	}
}
