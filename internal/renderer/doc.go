// Package renderer draws the player, the settings panel and the
// notification stack onto a terminal backend.
//
// Frames are drawn whole: the loop marks the renderer dirty after any
// state change and Render repaints everything. Text is measured in
// grapheme clusters so wide and combined characters keep their columns.
package renderer
