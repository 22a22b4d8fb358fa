package validate

import (
	"sort"
	"strings"
)

// Violations maps a field name to the messages for every rule that field
// failed. A nil or empty Violations means the payload passed.
type Violations map[string][]string

// Add appends a message to the given field.
func (v Violations) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Merge folds all entries of other into v.
func (v Violations) Merge(other Violations) {
	for field, msgs := range other {
		v[field] = append(v[field], msgs...)
	}
}

// Empty reports whether no field has a recorded violation.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Fields returns the violated field names in sorted order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for field := range v {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Error renders all violations as a single string. Violations implements
// error so a schema result can travel through error-returning call chains,
// but callers that render forms should range over the map instead.
func (v Violations) Error() string {
	if len(v) == 0 {
		return "no violations"
	}
	parts := make([]string, 0, len(v))
	for _, field := range v.Fields() {
		parts = append(parts, field+": "+strings.Join(v[field], "; "))
	}
	return strings.Join(parts, " | ")
}
