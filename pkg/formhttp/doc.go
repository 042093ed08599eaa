// Package formhttp serves form sessions over HTTP.
//
// Each POST /forms/{schema} creates an instance: a form.Session over an
// in-memory provider whose messages, field marks and submit gate land on a
// Board. Clients push values with POST /instances/{id}/fields/{field} and
// read the board either as JSON (GET /instances/{id}) or as a DataStar
// event stream (GET /instances/{id}/stream) that patches each message target
// with a templ fragment and keeps canSubmit and invalid signals in sync.
//
// Routes:
//
//	GET    /forms
//	POST   /forms/{schema}
//	GET    /instances/{id}
//	DELETE /instances/{id}
//	POST   /instances/{id}/fields/{field}
//	POST   /instances/{id}/submit
//	POST   /instances/{id}/reset
//	POST   /instances/{id}/messages
//	GET    /instances/{id}/stream
//
// Messages are translated through an optional locale.Catalog and HTML
// escaped before they reach the Board.
package formhttp
