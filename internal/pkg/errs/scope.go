package errs

import "strings"

// Scope identifies the calculation an error belongs to. Empty fields are
// omitted from the rendered form.
type Scope struct {
	Carrier string
	Zone    string
	Service string
	Weight  string
	RuleID  string
}

// String renders the scope as space separated key=value pairs.
func (s Scope) String() string {
	parts := make([]string, 0, 5)
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	add("carrier", s.Carrier)
	add("zone", s.Zone)
	add("service", s.Service)
	add("weight", s.Weight)
	add("rule", s.RuleID)
	return strings.Join(parts, " ")
}

func withScope(msg string, scope Scope) string {
	if s := scope.String(); s != "" {
		return msg + " [" + s + "]"
	}
	return msg
}
