package service

import "fmt"

// NotFoundError reports that a content or node id did not resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist, or has already been deleted", e.Resource, e.ID)
}

// OwnershipError reports that the caller is not the owner of the resource
// it tried to mutate.
type OwnershipError struct {
	ContentID string
	OwnerID   int64
	CallerID  int64
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("content %q belongs to user %d, not caller %d", e.ContentID, e.OwnerID, e.CallerID)
}

// StateError reports an illegal visibility transition.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// ValidationError reports a field constraint violation detected before any
// write happened.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
