// Package form orchestrates declarative field validation.
//
// A Session is built from an ordered list of FieldSpec values, a
// ValueProvider that reads the current inputs and a message.Renderer that
// shows feedback. It exposes the operations a form needs: CheckValid,
// CheckField, Submit and SetMsg, plus the event entry points FieldChanged,
// SubmitRequested and ResetRequested.
//
// # Evaluation
//
// Each field's rules run in declared order and stop at the first failure.
// The outcome is cached per field (valid with its value, or invalid) and
// reported to the message scheduler unless the field handles its own
// messages. Fields the provider marks exempt are skipped before any rule
// runs. Missing fields are evaluated as "" unless WithAllowMissing is set.
//
// When a field passes, every field that declared it as MatchedBy and holds a
// value is re-checked once, so a "confirm password" field follows changes to
// "password". The cascade is one level deep.
//
// Rule names that do not resolve are skipped and the field passes that
// rule. This keeps forms working when a rule is renamed but it also hides
// typos; the validator logs each skip at warn level.
//
// # Submit gating
//
// With WithControlGate the submit control starts disabled and after every
// check is enabled only while every declared field is cached as valid.
// Submit refuses with ErrSubmitDisabled while the gate is closed.
//
// # Example
//
//	provider := form.NewMapProvider(map[string]string{"email": "a@x.com"})
//	s, err := form.New(provider, renderer, []form.FieldSpec{
//		{Name: "email", Rules: []form.Rule{
//			form.Use("required", "Email is required"),
//			form.Use("email", "Email is invalid"),
//		}},
//		{Name: "confirm", MatchedBy: "email", Rules: []form.Rule{
//			form.Use("match(email)", "Emails do not match"),
//		}},
//	}, form.WithValid(func(values map[string]string) error {
//		return save(values)
//	}))
//	if err != nil {
//		return err
//	}
//	if err := s.Submit(); err != nil {
//		// errors.Is(err, form.ErrInvalid), form.ErrVetoed, ...
//	}
package form
