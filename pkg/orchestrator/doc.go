// Package orchestrator wires the schema sources (form documents and OpenAPI
// operations) to the form engine and a control registry, giving callers a
// single entry point that returns submitted values.
package orchestrator
