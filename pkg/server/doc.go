// Package server hosts live menu instances behind an HTTP API.
//
// Each instance is a [menu.Menu] created from a JSON config. Pointer and
// toggle events are posted one at a time and the response carries the
// callbacks they fired plus the resulting frame:
//
//	POST   /v1/menus                 {"config": {...}, "total": 5}
//	GET    /v1/menus/{id}?total=5
//	POST   /v1/menus/{id}/events     {"kind": "down", "x": 0, "y": 0}
//	GET    /v1/menus/{id}/frame.svg?guides=true
//	DELETE /v1/menus/{id}
//	GET    /v1/layout?strategy=petal&corner=bottom-right&total=8
//	POST   /v1/simulate              script JSON, returns a transcript
//
// Events that arrive out of order are not errors: the response reports
// them in its "ignored" field and the menu is unchanged. Failures use the
// body {"error": {"code": "...", "message": "..."}} where code is one of
// the [errors.Code] values.
//
// Rendered SVG frames and simulation transcripts are stored in the
// configured [cache.Cache], keyed by a hash of their inputs.
package server
