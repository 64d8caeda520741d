package gate

import (
	"errors"
	"fmt"

	"agency-console/internal/models"
)

// State is where the operator stands with respect to the session.
type State int

const (
	Unauthenticated State = iota
	Admin
	Employee
	Intern
)

func (s State) String() string {
	switch s {
	case Admin:
		return "admin"
	case Employee:
		return "employee"
	case Intern:
		return "intern"
	}
	return "unauthenticated"
}

// StateFor maps an authenticated user's role to a state. An unknown or empty
// role is treated as Admin.
func StateFor(role models.Role) State {
	switch role {
	case models.RoleEmployee:
		return Employee
	case models.RoleIntern:
		return Intern
	}
	return Admin
}

type EventKind int

const (
	EventLogin EventKind = iota
	EventLogout
	EventForcedLogout
)

type Event struct {
	Kind EventKind
	Role models.Role
}

func Login(role models.Role) Event { return Event{Kind: EventLogin, Role: role} }
func Logout() Event                { return Event{Kind: EventLogout} }
func ForcedLogout() Event          { return Event{Kind: EventForcedLogout} }

var (
	// ErrSwitchRole is returned for a login while another session is active.
	// Roles change only through logout and a fresh login.
	ErrSwitchRole   = errors.New("already signed in: log out before signing in with another account")
	ErrUnknownEvent = errors.New("unknown session event")
)

// Next applies e to s.
func Next(s State, e Event) (State, error) {
	switch e.Kind {
	case EventLogin:
		if s != Unauthenticated {
			return s, ErrSwitchRole
		}
		return StateFor(e.Role), nil
	case EventLogout, EventForcedLogout:
		return Unauthenticated, nil
	}
	return s, fmt.Errorf("%w: %d", ErrUnknownEvent, e.Kind)
}
