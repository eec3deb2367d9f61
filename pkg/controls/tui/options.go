package tui

// Theme holds the prefixes used when printing messages.
type Theme struct {
	ErrorPrefix    string
	RequiredSuffix string
}

// DefaultTheme is applied when no theme is configured.
var DefaultTheme = Theme{
	ErrorPrefix:    "✗ ",
	RequiredSuffix: " *",
}

// Option configures the terminal control set.
type Option func(*Set)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Set) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Set) {
		s.theme = theme
	}
}

// WithPageSize limits how many options select prompts show at once.
func WithPageSize(n int) Option {
	return func(s *Set) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithFileInspector replaces how picked file paths are turned into file
// metadata.
func WithFileInspector(inspect FileInspector) Option {
	return func(s *Set) {
		if inspect != nil {
			s.inspect = inspect
		}
	}
}
