package sheet

import (
	"strings"
)

// CircularDependencyError is returned when one or more cells can never
// resolve, either because they take part in a cycle, depend on a cell that
// does, or reference a name that does not exist.
type CircularDependencyError struct {
	// Names lists the unresolved cells in the order they were scanned.
	Names []string
}

// Error renders the names as "A, B and C". With a single name the final
// " and <last>" is still appended, giving "X and X".
func (e *CircularDependencyError) Error() string {
	return Report(e.Names)
}

// Report builds the diagnostic sentence for the unresolved names. The list
// is never empty when a resolver reports a failure; an empty list yields "".
func Report(names []string) string {
	if len(names) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Circular dependency between ")
	b.WriteString(names[0])
	for i := 1; i < len(names)-1; i++ {
		b.WriteString(", ")
		b.WriteString(names[i])
	}
	b.WriteString(" and ")
	b.WriteString(names[len(names)-1])
	b.WriteString(" detected")
	return b.String()
}
