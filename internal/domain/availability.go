package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date layout used on the booking site and in the API.
const DateLayout = "2006-01-02"

// Status is the tri-state outcome of classifying a booking page.
type Status string

const (
	// StatusIndeterminate means the page matched neither phrase set
	// (bot wall, error page, empty body). Lower confidence than StatusUnavailable.
	StatusIndeterminate Status = "indeterminate"
	StatusAvailable     Status = "available"
	StatusUnavailable   Status = "unavailable"
)

// ProviderID identifies the fetch provider that produced a result.
type ProviderID string

const (
	ProviderNone        ProviderID = "none"
	ProviderLightweight ProviderID = "lightweight"
	ProviderPrimaryJS   ProviderID = "primary-js"
	ProviderSecondaryJS ProviderID = "secondary-js"
)

// Signal is the availability signal extracted from one page.
//
// Invariants:
//   - StatusAvailable: RoomCount is nil (at least one, count unknown) or >= 1
//   - StatusUnavailable: RoomCount points to 0
//   - StatusIndeterminate: RoomCount is nil
type Signal struct {
	Status    Status
	RoomCount *int
	// Matched is the phrase that decided the outcome, empty when indeterminate.
	Matched string
}

// AvailableSignal builds an available signal. A count below 1 is dropped.
func AvailableSignal(count int, known bool, matched string) Signal {
	s := Signal{Status: StatusAvailable, Matched: matched}
	if known && count >= 1 {
		n := count
		s.RoomCount = &n
	}
	return s
}

func UnavailableSignal(matched string) Signal {
	zero := 0
	return Signal{Status: StatusUnavailable, RoomCount: &zero, Matched: matched}
}

func IndeterminateSignal() Signal {
	return Signal{Status: StatusIndeterminate}
}

func (s Signal) IsAvailable() bool { return s.Status == StatusAvailable }

// Conclusive reports whether the signal is a real positive or negative.
func (s Signal) Conclusive() bool { return s.Status != StatusIndeterminate }

// Available returns the JSON tri-state: true, false or nil for indeterminate.
func (s Signal) Available() *bool {
	switch s.Status {
	case StatusAvailable:
		v := true
		return &v
	case StatusUnavailable:
		v := false
		return &v
	default:
		return nil
	}
}

// DateResult is the outcome of probing one arrival date. Never mutated after creation.
type DateResult struct {
	Date       time.Time
	Signal     Signal
	BookingURL string
	Provider   ProviderID
}

// FailedResult is the entry used when no provider produced a page.
func FailedResult(date time.Time, bookingURL string) DateResult {
	return DateResult{
		Date:       date,
		Signal:     IndeterminateSignal(),
		BookingURL: bookingURL,
		Provider:   ProviderNone,
	}
}

type dateResultJSON struct {
	Date       string     `json:"date"`
	Status     Status     `json:"status"`
	Available  *bool      `json:"available"`
	RoomCount  *int       `json:"roomCount"`
	BookingURL string     `json:"bookingUrl"`
	Provider   ProviderID `json:"provider"`
	Matched    string     `json:"matched,omitempty"`
}

func (r DateResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateResultJSON{
		Date:       r.Date.Format(DateLayout),
		Status:     r.Signal.Status,
		Available:  r.Signal.Available(),
		RoomCount:  r.Signal.RoomCount,
		BookingURL: r.BookingURL,
		Provider:   r.Provider,
		Matched:    r.Signal.Matched,
	})
}

func (r *DateResult) UnmarshalJSON(data []byte) error {
	var w dateResultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d, err := ParseDate(w.Date)
	if err != nil {
		return err
	}
	*r = DateResult{
		Date:       d,
		Signal:     Signal{Status: w.Status, RoomCount: w.RoomCount, Matched: w.Matched},
		BookingURL: w.BookingURL,
		Provider:   w.Provider,
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// NextDay returns the following calendar day, keeping the date's location.
func NextDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}
