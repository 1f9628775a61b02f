package repository

import "github.com/google/uuid"

// validID reports whether id can be compared with a uuid column. Lookups by
// any other string behave as a miss instead of a driver error.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
