package condition

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is matched by every *CycleError.
var ErrCycle = errors.New("condition: dependency cycle")

// CycleError reports a cycle among condition-to-condition references. Path
// starts and ends with the same condition name.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("condition: dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// Is matches ErrCycle.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}
