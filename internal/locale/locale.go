// Package locale formats dates for the fixed Indonesian (id-ID) display locale
package locale

import (
	"fmt"
	"time"
)

var weekdays = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// LongDate formats t as "Minggu, 20 Juli 2025"
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// LongDateString formats a YYYY-MM-DD date. Unparseable input is returned unchanged.
func LongDateString(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return LongDate(t)
}
