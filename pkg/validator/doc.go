// Package validator compiles fluent, kind-specific rule builders into a
// normalized RuleSet that any form binding layer can consume.
//
// Each data kind has its own builder (Text, Number, Password, Email, URL,
// Tel, Date, Select, Boolean, Array, Files). Builders share Required and
// Custom, accumulate constraints through chained calls and are terminated by
// Compile:
//
//	rules := validator.Email().Required().Domain([]string{"acme.com"}).Compile()
//	if msg, ok := rules.Evaluate("x@other.com"); !ok {
//		fmt.Println(msg)
//	}
//
// Named checks live in an insertion ordered Checks mapping. Registering a
// name twice replaces the earlier check; Compile leaves Validate nil when no
// checks were registered. Builders never fail: conflicting bounds are kept as
// given.
package validator
