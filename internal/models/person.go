package models

import (
	"encoding/json"
	"fmt"
)

type PersonKind string

const (
	KindEmployee PersonKind = "employee"
	KindIntern   PersonKind = "intern"
)

// Person is a salary payee or handover assignee. The set of implementations is
// closed: EmployeeRef and InternRef.
type Person interface {
	PersonID() string
	DisplayName() string
	Kind() PersonKind
	isPerson()
}

type EmployeeRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (e EmployeeRef) PersonID() string    { return e.ID }
func (e EmployeeRef) DisplayName() string { return e.Name }
func (e EmployeeRef) Kind() PersonKind    { return KindEmployee }
func (EmployeeRef) isPerson()             {}

func (e EmployeeRef) MarshalJSON() ([]byte, error) {
	type alias EmployeeRef
	return json.Marshal(struct {
		Kind PersonKind `json:"kind"`
		alias
	}{KindEmployee, alias(e)})
}

type InternRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Duration string `json:"duration,omitempty"`
}

func (i InternRef) PersonID() string    { return i.ID }
func (i InternRef) DisplayName() string { return i.Name }
func (i InternRef) Kind() PersonKind    { return KindIntern }
func (InternRef) isPerson()             {}

func (i InternRef) MarshalJSON() ([]byte, error) {
	type alias InternRef
	return json.Marshal(struct {
		Kind PersonKind `json:"kind"`
		alias
	}{KindIntern, alias(i)})
}

// NewPerson builds the variant for kind. Unknown kinds are an error.
func NewPerson(kind PersonKind, id, name string) (Person, error) {
	switch kind {
	case KindEmployee:
		return EmployeeRef{ID: id, Name: name}, nil
	case KindIntern:
		return InternRef{ID: id, Name: name}, nil
	}
	return nil, fmt.Errorf("unknown person kind %q", kind)
}

// DescribePerson renders "Name (Employee)" style labels.
func DescribePerson(p Person) string {
	switch v := p.(type) {
	case EmployeeRef:
		return orUnknown(v.Name) + " (Employee)"
	case InternRef:
		return orUnknown(v.Name) + " (Intern)"
	case nil:
		return "Unknown"
	default:
		panic(fmt.Sprintf("models: unhandled person type %T", p))
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
