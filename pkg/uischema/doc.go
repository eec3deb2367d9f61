// Package uischema loads declarative form documents from JSON or YAML files
// and turns them into forms. Each field may list rules by name; the rules are
// compiled into the validator builder matching the field's kind, so a
// document can express everything the builder API offers.
package uischema
