// Package intent decides whether a chat message asks to book a vet visit.
package intent

import "regexp"

// trigger is one independent booking-intent alternative.
type trigger struct {
	name    string
	pattern *regexp.Regexp
}

// bookingTriggers are evaluated independently; any match is a booking intent.
// Extend by appending, order carries no weight.
var bookingTriggers = []trigger{
	{"book_appointment", regexp.MustCompile(`(?i)book\s*(an?)?\s*appointment`)},
	{"book_visit", regexp.MustCompile(`(?i)book\s*(an?)?\s*(vet|veterinary)?\s*(visit|checkup|check-up)`)},
	{"schedule_visit", regexp.MustCompile(`(?i)schedule\s*(an?)?\s*(vet|veterinary)?\s*(visit|appointment|checkup|check-up)`)},
	{"make_appointment", regexp.MustCompile(`(?i)make\s*(an?)?\s*appointment`)},
	{"need_vet", regexp.MustCompile(`(?i)need\s*(to\s*see|an?\s*appointment|a\s*vet)`)},
	{"want_booking", regexp.MustCompile(`(?i)want\s*(to\s*book|to\s*schedule|an?\s*appointment)`)},
	{"set_up_appointment", regexp.MustCompile(`(?i)set\s*up\s*(an?)?\s*(appointment|visit)`)},
}

// DetectBookingIntent reports whether message expresses intent to schedule a visit.
// It does not know whether a booking is already in progress; callers check that first.
func DetectBookingIntent(message string) bool {
	_, ok := MatchBookingTrigger(message)
	return ok
}

// MatchBookingTrigger returns the name of the first trigger that matches message.
func MatchBookingTrigger(message string) (string, bool) {
	for _, t := range bookingTriggers {
		if t.pattern.MatchString(message) {
			return t.name, true
		}
	}
	return "", false
}
