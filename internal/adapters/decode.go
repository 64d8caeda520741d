package adapters

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report wire names (_id, payeeModel) rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// decodeRecord unmarshals one wire record and validates its identity fields.
func decodeRecord(entity string, index int, raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return &DecodeError{Entity: entity, Index: index, Err: err}
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			if verrs[0].Tag() == "required" {
				return &DecodeError{Entity: entity, Field: field, Index: index, Err: ErrMissingField}
			}
			return &DecodeError{Entity: entity, Field: field, Index: index, Err: ErrBadShape}
		}
		return &DecodeError{Entity: entity, Index: index, Err: err}
	}
	return nil
}

// ExtractList returns the items of the array found under key. An empty key or
// a body that is itself an array reads the root. A missing key is an empty
// list, matching how every screen treats a not-yet-populated collection.
func ExtractList(entity string, body []byte, key string) ([][]byte, error) {
	root := gjson.ParseBytes(body)
	res := root
	if key != "" && !root.IsArray() {
		res = root.Get(key)
	}
	if !res.Exists() || res.Type == gjson.Null {
		return [][]byte{}, nil
	}
	if !res.IsArray() {
		return nil, &DecodeError{Entity: entity, Field: key, Index: -1, Err: ErrBadShape}
	}
	items := res.Array()
	out := make([][]byte, 0, len(items))
	for _, item := range items {
		out = append(out, []byte(item.Raw))
	}
	return out, nil
}

// ExtractObject returns the object found under key (or the root when key is empty).
func ExtractObject(entity string, body []byte, key string) ([]byte, error) {
	res := gjson.ParseBytes(body)
	if key != "" {
		res = res.Get(key)
	}
	if !res.IsObject() {
		return nil, &DecodeError{Entity: entity, Field: key, Index: -1, Err: ErrMissingField}
	}
	return []byte(res.Raw), nil
}

func decodeList[W any, M any](entity string, body []byte, key string, adapt func(W) (M, error)) ([]M, error) {
	items, err := ExtractList(entity, body, key)
	if err != nil {
		return nil, err
	}
	out := make([]M, 0, len(items))
	for i, raw := range items {
		var w W
		if err := decodeRecord(entity, i, raw, &w); err != nil {
			return nil, err
		}
		m, err := adapt(w)
		if err != nil {
			return nil, withIndex(err, i)
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeOne[W any, M any](entity string, body []byte, key string, adapt func(W) (M, error)) (M, error) {
	var zero M
	raw, err := ExtractObject(entity, body, key)
	if err != nil {
		return zero, err
	}
	var w W
	if err := decodeRecord(entity, -1, raw, &w); err != nil {
		return zero, err
	}
	return adapt(w)
}

func withIndex(err error, i int) error {
	var de *DecodeError
	if errors.As(err, &de) && de.Index < 0 {
		de.Index = i
	}
	return err
}

// infallible lifts a pure adapter into the decodeList signature.
func infallible[W any, M any](f func(W) M) func(W) (M, error) {
	return func(w W) (M, error) { return f(w), nil }
}

// singleKey returns key when the body wraps the record under it, otherwise ""
// so the root object is read. Detail endpoints are inconsistent about wrapping.
func singleKey(body []byte, key string) string {
	if gjson.GetBytes(body, key).IsObject() {
		return key
	}
	return ""
}

func hasKey(body []byte, key string) bool {
	return gjson.GetBytes(body, key).Exists()
}

func stringAt(body []byte, path string) string {
	return gjson.GetBytes(body, path).String()
}
