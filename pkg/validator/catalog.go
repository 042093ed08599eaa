package validator

import "slices"

var builtins = map[string]Func{
	"ip":          IP,
	"url":         URL,
	"date":        Date,
	"mobile":      Mobile,
	"phone":       Phone,
	"required":    Required,
	"id-number":   IDNumber,
	"cjk-text":    CJKText,
	"email":       Email,
	"numeric-id":  NumericID,
	"zipcode":     Zipcode,
	"digits":      Digits,
	"letters":     Letters,
	"length":      Length,
	"byte-length": ByteLength,
	"match":       Match,
}

var aliases = map[string]string{
	"IDcard":     "id-number",
	"chinese":    "cjk-text",
	"qq":         "numeric-id",
	"byteLength": "byte-length",
}

// Builtin returns the built-in rule named name. Legacy aliases are accepted.
func Builtin(name string) (Func, bool) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	fn, ok := builtins[name]
	return fn, ok
}

// Builtins returns the canonical built-in rule names in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
