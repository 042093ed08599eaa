package validator

import "regexp"

var (
	ipRegex        = regexp.MustCompile(`^((2[0-4]\d|25[0-5]|[01]?\d\d?)\.){3}(2[0-4]\d|25[0-5]|[01]?\d\d?)$`)
	urlRegex       = regexp.MustCompile(`^(http|https)://([\w-]+\.)+[\w-]+.*?$`)
	dateDashRegex  = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	dateSlashRegex = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)
	emailRegex     = regexp.MustCompile(`(?i)^[\w+\-]+(\.[\w+\-]+)*@[a-z\d\-]+(\.[a-z\d\-]+)*\.([a-z]{2,4})$`)
)

// IP passes for a dotted-quad IPv4 address. The whole value must be the
// address: "x1.2.3.4y" fails, unlike the unanchored legacy pattern that
// accepted an address embedded in surrounding text.
func IP(_ Context, value string, _ ...string) bool {
	return ipRegex.MatchString(value)
}

// URL passes for an absolute http or https URL with a dotted host.
func URL(_ Context, value string, _ ...string) bool {
	return urlRegex.MatchString(value)
}

// Date accepts 2017-1-2, 2017/1/2, 2017-01-02 and 2017/01/02. Only the shape
// is checked, not the calendar.
func Date(_ Context, value string, _ ...string) bool {
	return dateDashRegex.MatchString(value) || dateSlashRegex.MatchString(value)
}

// Email passes for a conventional local@domain.tld address.
func Email(_ Context, value string, _ ...string) bool {
	return emailRegex.MatchString(value)
}
