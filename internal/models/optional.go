package models

import "encoding/json"

// OptionalString distinguishes a JSON field that was absent from one that
// was explicitly null or carried a value. Needed for partial updates where
// "not supplied" means "leave unchanged".
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

// UnmarshalJSON is only invoked when the field is present in the payload,
// so Set is true for both null and string values.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the value; absent and null both encode as null.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
