package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats phone as E.164. Numbers without a country code are
// read in defaultRegion. Unparseable input yields "".
func NormalizePhone(phone, defaultRegion string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, strings.ToUpper(defaultRegion))
	if err != nil {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// PhoneNormalizer binds NormalizePhone to a region.
func PhoneNormalizer(defaultRegion string) Strategy {
	return func(phone string) string {
		return NormalizePhone(phone, defaultRegion)
	}
}
