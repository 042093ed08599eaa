// Package message debounces validation feedback before it reaches the UI.
//
// Several fields may render into one message target (a shared error line
// under a login form, for instance). The Scheduler delays each report by a
// short coalescing window, keeps at most one pending render per target, and
// arbitrates which field owns a shared target so that one field's success
// does not wipe a sibling's error during a whole-form submit.
//
// Ownership rules:
//
//   - Submit-triggered reports (outside stop-on-error mode) take part in
//     arbitration. An error report takes ownership and overwrites. A success
//     report from a field other than the current owner is dropped.
//   - Blur-triggered and manual reports clear the owner before rendering.
//   - Reports without a field (direct target writes) bypass arbitration.
//
// Rendering goes through the Renderer interface; the Scheduler itself only
// tracks the owner, the pending timer and the last rendered content per
// target. Time is abstracted behind Clock so tests can drive the window with
// ManualClock instead of sleeping.
package message
