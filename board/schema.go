package board

import (
	"fmt"
	"net/url"
	"strings"
)

// Field keys. These double as the AcroForm field names in templates that
// carry interactive form fields.
const (
	FieldTitle      = "title"
	FieldOrganizer  = "organizer"
	FieldLicenseNo  = "license_no"
	FieldWeekday    = "weekday"
	FieldDateHijri  = "date_hijri"
	FieldDateGreg   = "date_gregorian"
	FieldTime       = "time"
	FieldCity       = "city"
	FieldVenue      = "venue"
	FieldPhone      = "phone"
	FieldAuctionURL = "auction_url"
)

// Font families the renderer knows how to load. Which family a field uses is
// a static schema lookup, not a per-request choice.
const (
	FontHeadline = "headline"
	FontBody     = "body"
)

// Kind selects the extra validation a field value gets beyond required/length.
type Kind int

const (
	KindText Kind = iota
	KindURL
)

// FieldSpec describes one form field of the announcement.
type FieldSpec struct {
	Key      string `json:"key"`
	Label    string `json:"label"` // Arabic label shown on the browser form
	Required bool   `json:"required"`
	MaxLen   int    `json:"max_len"` // in runes
	Kind     Kind   `json:"-"`

	// Lines is 2 for the fields whose value is whitespace-split over two
	// board lines, 1 for everything else.
	Lines int `json:"lines"`

	// Font is the family key the renderer resolves to a TTF file.
	Font string `json:"-"`
}

// Schema is the static field table of the announcement form, in board
// reading order.
var Schema = []FieldSpec{
	{Key: FieldTitle, Label: "عنوان المزاد", Required: true, MaxLen: 90, Lines: 2, Font: FontHeadline},
	{Key: FieldOrganizer, Label: "الجهة المنظمة", Required: true, MaxLen: 60, Lines: 1, Font: FontBody},
	{Key: FieldLicenseNo, Label: "رقم الترخيص", Required: true, MaxLen: 30, Lines: 1, Font: FontBody},
	{Key: FieldWeekday, Label: "اليوم", Required: true, MaxLen: 20, Lines: 1, Font: FontBody},
	{Key: FieldDateHijri, Label: "التاريخ الهجري", Required: true, MaxLen: 30, Lines: 1, Font: FontBody},
	{Key: FieldDateGreg, Label: "التاريخ الميلادي", Required: false, MaxLen: 30, Lines: 1, Font: FontBody},
	{Key: FieldTime, Label: "الوقت", Required: true, MaxLen: 20, Lines: 1, Font: FontBody},
	{Key: FieldCity, Label: "المدينة", Required: true, MaxLen: 30, Lines: 1, Font: FontBody},
	{Key: FieldVenue, Label: "موقع المزاد", Required: true, MaxLen: 90, Lines: 2, Font: FontBody},
	{Key: FieldPhone, Label: "رقم التواصل", Required: true, MaxLen: 25, Lines: 1, Font: FontBody},
	{Key: FieldAuctionURL, Label: "رابط المزاد", Required: true, MaxLen: 200, Lines: 1, Kind: KindURL, Font: FontBody},
}

// SpecFor returns the schema entry for key.
func SpecFor(key string) (FieldSpec, bool) {
	for _, spec := range Schema {
		if spec.Key == key {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// ValidationError reports all schema violations of a payload at once, keyed
// by field key.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for _, spec := range Schema {
		if _, ok := e.Fields[spec.Key]; ok {
			keys = append(keys, spec.Key)
		}
	}
	if _, ok := e.Fields["logo"]; ok {
		keys = append(keys, "logo")
	}
	return fmt.Sprintf("invalid announcement: %s", strings.Join(keys, ", "))
}

// Validate checks the payload against the schema and returns a
// *ValidationError listing every violation, or nil.
func Validate(a *Announcement) error {
	values := a.Values()
	fields := map[string]string{}

	for _, spec := range Schema {
		value := values[spec.Key]
		if value == "" {
			if spec.Required {
				fields[spec.Key] = "field is required"
			}
			continue
		}
		if runes := len([]rune(value)); runes > spec.MaxLen {
			fields[spec.Key] = fmt.Sprintf("value is %d characters, maximum is %d", runes, spec.MaxLen)
			continue
		}
		if spec.Kind == KindURL {
			u, err := url.ParseRequestURI(value)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
				fields[spec.Key] = "value must be an absolute http(s) URL"
			}
		}
	}

	if strings.TrimSpace(a.Logo) == "" {
		fields["logo"] = "field is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
