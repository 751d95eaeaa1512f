package role

import (
	"fmt"

	"CareLink360/util"
)

// Role is the closed set of account kinds a session token can carry.
type Role string

const (
	Doctor    Role = "doctor"
	Assistant Role = "assistant"
	Patient   Role = "patient"
)

func Parse(s string) (Role, error) {
	switch Role(s) {
	case Doctor, Assistant, Patient:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", util.ErrUnauthenticated, s)
	}
}

// Collection maps a role to the collection its accounts live in.
func (r Role) Collection() string {
	switch r {
	case Doctor:
		return util.DoctorCollection
	case Assistant:
		return util.AssistantCollection
	case Patient:
		return util.PatientCollection
	}
	return ""
}
