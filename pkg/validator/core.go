package validator

// core carries the state every builder kind shares: the required message and
// the named checks. B is the concrete builder so chained calls keep their
// kind-specific type.
type core[B any] struct {
	self     B
	required string
	checks   *Checks
}

func newCore[B any](self B) core[B] {
	return core[B]{self: self, checks: NewChecks()}
}

// Required marks the field as required. The last call wins.
func (c *core[B]) Required(message ...string) B {
	c.required = messageOr(message, DefaultRequiredMessage)
	return c.self
}

// Custom registers a named predicate. A predicate failing without a message
// reports message, or DefaultInvalidMessage when none is given. Reusing a name
// replaces the earlier predicate.
func (c *core[B]) Custom(name string, fn Predicate, message ...string) B {
	if fn == nil {
		return c.self
	}
	fallback := messageOr(message, DefaultInvalidMessage)
	c.checks.Set(name, func(value any) (bool, string) {
		ok, msg := fn(value)
		if ok {
			return true, ""
		}
		if msg != "" {
			return false, msg
		}
		return false, fallback
	})
	return c.self
}

func (c *core[B]) check(name string, fn Check) B {
	c.checks.Set(name, fn)
	return c.self
}

// compile returns the shared portion of a RuleSet. Validate stays nil when no
// checks were registered.
func (c *core[B]) compile() RuleSet {
	rules := RuleSet{Required: c.required}
	if c.checks.Len() > 0 {
		rules.Validate = c.checks.Clone()
	}
	return rules
}

func cloneLength(rule *LengthRule) *LengthRule {
	if rule == nil {
		return nil
	}
	out := *rule
	return &out
}

func cloneBound(rule *BoundRule) *BoundRule {
	if rule == nil {
		return nil
	}
	out := *rule
	return &out
}

func clonePattern(rule *PatternRule) *PatternRule {
	if rule == nil {
		return nil
	}
	out := *rule
	return &out
}
