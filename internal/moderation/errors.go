package moderation

import "errors"

// ErrDependencyUnavailable marks failures of an external collaborator
// (account store, object store, classifier). Checks wrap it with
// fmt.Errorf("...: %w", ...) so callers can errors.Is against it and
// surface a 5xx-equivalent instead of a policy denial.
var ErrDependencyUnavailable = errors.New("moderation dependency unavailable")
