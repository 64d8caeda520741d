package adapters

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Ref is a reference field the API sends either as a bare id string or as a
// populated document. Null or missing leaves the Ref empty.
type Ref struct {
	ID        string
	Populated bool
	doc       gjson.Result
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	res := gjson.ParseBytes(b)
	switch {
	case res.Type == gjson.Null:
		*r = Ref{}
	case res.Type == gjson.String:
		*r = Ref{ID: res.String()}
	case res.IsObject():
		id := res.Get("_id").String()
		if id == "" {
			id = res.Get("id").String()
		}
		*r = Ref{ID: id, Populated: true, doc: res}
	default:
		return fmt.Errorf("reference must be a string or an object, got %s", res.Type)
	}
	return nil
}

// Field returns a string field of the populated document, or "" for bare ids.
func (r Ref) Field(name string) string {
	if !r.Populated {
		return ""
	}
	return r.doc.Get(name).String()
}

// Raw returns the populated document's JSON, or nil for bare ids.
func (r Ref) Raw() []byte {
	if !r.Populated {
		return nil
	}
	return []byte(r.doc.Raw)
}

// FieldOr returns the populated field or fallback when absent.
func (r Ref) FieldOr(name, fallback string) string {
	if v := r.Field(name); v != "" {
		return v
	}
	return fallback
}
