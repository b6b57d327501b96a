package analyzer

// DefaultBuiltins maps the built-in functions the language ships with to the
// C header each one needs.
var DefaultBuiltins = map[string]string{
	"println": "stdio.h",
}

func addBuiltins(into map[string]string, from map[string]string) {
	for name, header := range from {
		into[name] = header
	}
}
