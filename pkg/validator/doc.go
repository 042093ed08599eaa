// Package validator provides the rule layer of the form validation engine:
// a catalog of built-in string predicates, a Registry for per-instance
// custom rules, and a parser for rule descriptors such as "length(3,10)".
//
// A rule is a pure function over the raw string value of a field. It may
// read the rest of the form through a Context (the "match" rule does this to
// compare against a counterpart field) but must never mutate shared state.
// Rules return a plain bool; the human-readable failure message belongs to
// the field configuration, not to the rule.
//
// # Resolution
//
// Registry.Resolve looks up instance rules first and falls back to the
// immutable built-in catalog. Names that resolve to nothing are reported as
// not found; callers in package form skip such rules, which means a typo in a
// rule name silently passes. That leniency is kept for compatibility and is
// logged as a warning by the form validator.
//
// # Built-in catalog
//
//	ip           dotted IPv4 address
//	url          http:// or https:// URL
//	date         yyyy-m-d or yyyy/m/d
//	mobile       11-digit mobile number starting with 1
//	phone        landline number with area code, or 400/800 service number
//	required     not empty and not only whitespace
//	id-number    18/15 digit resident identity number
//	cjk-text     CJK (and full-width) characters only
//	email        e-mail address
//	numeric-id   numeric account id, 5+ digits, no leading zero
//	zipcode      6 digit postal code
//	digits       ASCII digits only
//	letters      ASCII letters only
//	length       length(min[,max]) in characters
//	byte-length  byte-length(min[,max]); runes above U+00FF weigh 2
//	match        match(field); equals the value of another field
//
// Legacy aliases IDcard, chinese, qq and byteLength resolve to id-number,
// cjk-text, numeric-id and byte-length.
//
// # Usage
//
//	reg := validator.NewRegistry()
//	reg.MustRegister("even", func(_ validator.Context, v string, _ ...string) bool {
//		n, err := strconv.Atoi(v)
//		return err == nil && n%2 == 0
//	})
//
//	d, _ := validator.ParseDescriptor("length(3,10)")
//	if fn, ok := reg.Resolve(d.Name); ok {
//		ok = fn(validator.Values{}, "abc", d.Args...)
//	}
package validator
