// Package controls connects form bindings to interactive controls.
//
// A Registry maps each form.Control kind to a Control implementation and Run
// drives a form through present, submit and re-present cycles. The tui
// subpackage supplies terminal controls for every kind.
package controls
