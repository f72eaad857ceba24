// Package board defines the auction announcement payload and the static
// field schema it is validated against. The schema is the single source of
// truth for the browser form, the validation step and the renderer's
// font-family selection.
package board

import "strings"

// Announcement holds the values of one filled announcement form. All text
// values are expected to be Arabic except phone, dates and the auction URL.
type Announcement struct {
	Title     string `json:"title"`
	Organizer string `json:"organizer"`
	LicenseNo string `json:"license_no"`
	Weekday   string `json:"weekday"`
	DateHijri string `json:"date_hijri"`
	DateGreg  string `json:"date_gregorian"`
	Time      string `json:"time"`
	City      string `json:"city"`
	Venue     string `json:"venue"`
	Phone     string `json:"phone"`

	// AuctionURL is encoded into the QR code on the board.
	AuctionURL string `json:"auction_url"`

	// Logo is the organizer logo as base64, either raw or as a data URI.
	Logo string `json:"logo"`
}

// Values returns the text fields keyed by schema key. The logo is not a text
// field and is handled separately by the renderer.
func (a *Announcement) Values() map[string]string {
	return map[string]string{
		FieldTitle:      strings.TrimSpace(a.Title),
		FieldOrganizer:  strings.TrimSpace(a.Organizer),
		FieldLicenseNo:  strings.TrimSpace(a.LicenseNo),
		FieldWeekday:    strings.TrimSpace(a.Weekday),
		FieldDateHijri:  strings.TrimSpace(a.DateHijri),
		FieldDateGreg:   strings.TrimSpace(a.DateGreg),
		FieldTime:       strings.TrimSpace(a.Time),
		FieldCity:       strings.TrimSpace(a.City),
		FieldVenue:      strings.TrimSpace(a.Venue),
		FieldPhone:      strings.TrimSpace(a.Phone),
		FieldAuctionURL: strings.TrimSpace(a.AuctionURL),
	}
}

// SplitLines splits a value over at most two lines on whitespace, keeping
// the rune count of both lines as balanced as possible. Single-word values
// stay on one line.
func SplitLines(value string) []string {
	words := strings.Fields(value)
	if len(words) <= 1 {
		return []string{strings.TrimSpace(value)}
	}

	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}

	// Walk the single split point that divides the words into the two most
	// evenly sized halves.
	best := 1
	bestDiff := total
	left := 0
	for i := 0; i < len(words)-1; i++ {
		left += len([]rune(words[i]))
		diff := (total - left) - left
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			best = i + 1
		}
	}

	return []string{
		strings.Join(words[:best], " "),
		strings.Join(words[best:], " "),
	}
}
