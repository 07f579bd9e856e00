package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts used for the string-typed date and time fields
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Booking represents one scheduled use of a meeting room
type Booking struct {
	ID        string `json:"id"`
	Room      string `json:"room"`
	Title     string `json:"title"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// Before reports whether b starts strictly earlier than other.
// Well-formed dates and times compare correctly as plain strings.
func (b Booking) Before(other Booking) bool {
	if b.Date != other.Date {
		return b.Date < other.Date
	}
	return b.StartTime < other.StartTime
}

// BookingRequest holds the raw fields captured from a booking form
type BookingRequest struct {
	Room      string `json:"room"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Normalize trims surrounding whitespace from every field
func (r BookingRequest) Normalize() BookingRequest {
	return BookingRequest{
		Room:      strings.TrimSpace(r.Room),
		Title:     strings.TrimSpace(r.Title),
		Date:      strings.TrimSpace(r.Date),
		StartTime: strings.TrimSpace(r.StartTime),
		EndTime:   strings.TrimSpace(r.EndTime),
	}
}

// Booking builds the booking record for this request under the given id
func (r BookingRequest) Booking(id string) Booking {
	return Booking{
		ID:        id,
		Room:      r.Room,
		Title:     r.Title,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// Validation failures reported by BookingRequest.Validate
var (
	ErrMissingField   = errors.New("required field missing")
	ErrUnknownRoom    = errors.New("unknown room")
	ErrMalformedField = errors.New("malformed value")
)

// FieldError ties a validation failure to the form field that caused it
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks that all fields are present, that the room is part of the
// catalog and that date and times are in zero-padded YYYY-MM-DD and HH:MM form. It returns nil or the
// joined *FieldError values, one per offending field.
// End time is not compared against start time and overlaps are not checked.
func (r BookingRequest) Validate(catalog *RoomCatalog) error {
	var errs []error

	required := []struct {
		field string
		value string
	}{
		{"room", r.Room},
		{"title", r.Title},
		{"date", r.Date},
		{"start_time", r.StartTime},
		{"end_time", r.EndTime},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, &FieldError{Field: f.field, Err: ErrMissingField})
		}
	}

	if r.Room != "" && !catalog.Contains(r.Room) {
		errs = append(errs, &FieldError{Field: "room", Err: ErrUnknownRoom})
	}
	if r.Date != "" {
		if !wellFormed(DateLayout, r.Date) {
			errs = append(errs, &FieldError{Field: "date", Err: ErrMalformedField})
		}
	}
	if r.StartTime != "" {
		if !wellFormed(TimeLayout, r.StartTime) {
			errs = append(errs, &FieldError{Field: "start_time", Err: ErrMalformedField})
		}
	}
	if r.EndTime != "" {
		if !wellFormed(TimeLayout, r.EndTime) {
			errs = append(errs, &FieldError{Field: "end_time", Err: ErrMalformedField})
		}
	}

	return errors.Join(errs...)
}

// wellFormed reports whether value is in the exact form layout produces.
// time.Parse alone accepts "9:00" for "15:04", which breaks string ordering.
func wellFormed(layout, value string) bool {
	t, err := time.Parse(layout, value)
	return err == nil && t.Format(layout) == value
}

// FieldErrors flattens a Validate result into a field -> message map
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			var fe *FieldError
			if errors.As(e, &fe) {
				if _, seen := out[fe.Field]; !seen {
					out[fe.Field] = fe.Err.Error()
				}
			}
		}
		return out
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		out[fe.Field] = fe.Err.Error()
	}
	return out
}

// SampleBookings returns the demonstration bookings shown on a fresh start
func SampleBookings() []BookingRequest {
	return []BookingRequest{
		{Room: "Aula Edelweiss", Title: "Rapat Direksi", Date: "2025-07-20", StartTime: "09:00", EndTime: "11:00"},
		{Room: "Aula Zoom Cempaka", Title: "Pelatihan Karyawan", Date: "2025-07-20", StartTime: "13:00", EndTime: "16:00"},
		{Room: "Aula Rawat Jalan", Title: "Presentasi Produk", Date: "2025-07-21", StartTime: "10:00", EndTime: "11:30"},
	}
}
