// Package schema loads declarative form definitions from YAML.
//
// A schema names the form, optionally pins session options and lists the
// fields with their ordered rules:
//
//	name: signup
//	options:
//	  trigger_default: [email]
//	fields:
//	  - name: email
//	    target: "#email-msg"
//	    rules:
//	      required: email is required
//	      email: email is malformed
//	  - name: confirm
//	    matched_by: email
//	    rules:
//	      - required: confirm your email
//	      - match(email): emails do not match
//
// Rule order in the document is the evaluation order. Form.Specs and
// Form.SessionOptions turn a schema into the arguments of form.New.
package schema
