// Package locale translates validation messages.
//
// Catalogs are YAML documents keyed by BCP 47 language tag. Rule messages in
// form schemas double as catalog keys, so a session created with
//
//	form.WithMessageFormatter(catalog.Formatter(catalog.Match(r.Header.Get("Accept-Language"))))
//
// renders "email is required" as whatever the matched language says. Nested
// keys are flattened with dots and %{name} placeholders are filled by T.
// Language negotiation uses golang.org/x/text/language.
package locale
