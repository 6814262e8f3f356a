package utils

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewReservationCode returns a new confirmation code. Codes are ULIDs, so
// they sort by creation time and are safe to hand out to citizens.
func NewReservationCode() string {
	return ulid.Make().String()
}

// IsReservationCode reports whether s is a well-formed confirmation code.
func IsReservationCode(s string) bool {
	_, err := ulid.ParseStrict(strings.ToUpper(s))
	return err == nil
}
