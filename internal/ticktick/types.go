package ticktick

import (
	"errors"
	"fmt"

	"ticktick-cli/internal/config"
)

// ErrNoCredentials is returned when neither credential set is configured.
var ErrNoCredentials = errors.New(
	"no credentials configured: set " + config.EnvAccessToken +
		" and/or " + config.EnvUsername + "+" + config.EnvPassword)

// Interface names used in capability errors.
const (
	NeedOpen = "open"
	NeedWeb  = "web"
)

// CapabilityError reports that an operation was invoked without the
// backend interface it requires.
type CapabilityError struct {
	// Op is the operation that was attempted (e.g., "create task", "search")
	Op string

	// Need names the missing interface: NeedOpen or NeedWeb
	Need string
}

// Error implements the error interface
func (e *CapabilityError) Error() string {
	switch e.Need {
	case NeedOpen:
		return fmt.Sprintf("%s requires the official interface (%s)", e.Op, config.EnvAccessToken)
	case NeedWeb:
		return fmt.Sprintf("%s requires the web interface (%s+%s)", e.Op, config.EnvUsername, config.EnvPassword)
	default:
		return fmt.Sprintf("%s requires the %s interface", e.Op, e.Need)
	}
}
