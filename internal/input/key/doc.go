// Package key provides remote-control key events and their classification.
//
// This package defines the fundamental types for representing remote input:
//
//   - Event: a single key event as delivered by the host (down, press, up)
//     carrying pre-decoded key and char codes
//   - Action: the semantic category of an event (direction, confirm,
//     cancel, color button)
//   - Classify: the pure mapping from Event to Action
//
// # Code Tables
//
// Directional buttons are looked up by key code, color buttons by char
// code. Different remote firmwares emit different char codes for the same
// physical color button, so each color accepts two alternate codes:
//
//	red    403
//	green  404, 172
//	yellow 405, 170
//	blue   406, 191
//
// Confirm (13) only counts for genuine key input. Synthesized events that
// happen to share the code are not classified as Confirm.
package key
