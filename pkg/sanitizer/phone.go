package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const DefaultRegion = "ID"

// NormalizePhone formats phone as E.164. Numbers without a country code are
// read in each of regions in turn (DefaultRegion when none is given). An
// unparseable number yields "".
func NormalizePhone(phone string, regions ...string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}
	if len(regions) == 0 {
		regions = []string{DefaultRegion}
	}

	for _, region := range regions {
		parsedNumber, err := phonenumbers.Parse(phone, strings.ToUpper(region))
		if err == nil {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}

// PhoneOrRaw normalises phone and falls back to the trimmed input when it
// cannot be parsed.
func PhoneOrRaw(phone string, regions ...string) string {
	if normalized := NormalizePhone(phone, regions...); normalized != "" {
		return normalized
	}
	return strings.TrimSpace(phone)
}
