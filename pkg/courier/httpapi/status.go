package httpapi

import "slices"

// StatusTable maps the statuses of a credential probe to its outcome.
type StatusTable struct {
	Valid   []int
	Invalid []int
}

// Interpret returns true for a Valid status, false for an Invalid one, and
// an HTTP error for anything else.
func (t StatusTable) Interpret(resp *Response) (bool, error) {
	switch {
	case slices.Contains(t.Valid, resp.StatusCode):
		return true, nil
	case slices.Contains(t.Invalid, resp.StatusCode):
		return false, nil
	default:
		return false, resp.UnexpectedStatus()
	}
}

// OK reports whether resp carries one of the given statuses.
func OK(resp *Response, statuses ...int) bool {
	return slices.Contains(statuses, resp.StatusCode)
}
