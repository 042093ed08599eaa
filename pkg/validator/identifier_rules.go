package validator

import "regexp"

var (
	mobileRegex    = regexp.MustCompile(`^1\d{10}$`)
	phoneRegex     = regexp.MustCompile(`^(?:(?:0\d{2,3}[\- ]?[1-9]\d{6,7})|(?:[48]00[\- ]?[1-9]\d{6}))$`)
	idNumberRegex  = regexp.MustCompile(`^\d{6}(19|2\d)?\d{2}(0[1-9]|1[012])(0[1-9]|[12]\d|3[01])\d{3}(\d|X)?$`)
	numericIDRegex = regexp.MustCompile(`^[1-9]\d{4,}$`)
	zipcodeRegex   = regexp.MustCompile(`^\d{6}$`)
)

// Mobile passes for an 11 digit mobile number starting with 1.
func Mobile(_ Context, value string, _ ...string) bool {
	return mobileRegex.MatchString(value)
}

// Phone passes for an area-coded landline (010-12345678) or a 400/800
// service number.
func Phone(_ Context, value string, _ ...string) bool {
	return phoneRegex.MatchString(value)
}

// IDNumber passes for a 15 or 18 character resident identity number.
func IDNumber(_ Context, value string, _ ...string) bool {
	return idNumberRegex.MatchString(value)
}

// NumericID passes for a numeric account id of at least 5 digits.
func NumericID(_ Context, value string, _ ...string) bool {
	return numericIDRegex.MatchString(value)
}

// Zipcode passes for a 6 digit postal code.
func Zipcode(_ Context, value string, _ ...string) bool {
	return zipcodeRegex.MatchString(value)
}
