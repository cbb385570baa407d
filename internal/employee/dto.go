package employee

import (
	"bytes"
	"encoding/json"
	"strings"
)

// OptionalString tells apart a field that was omitted, sent as null, or sent
// with a value.
type OptionalString struct {
	Set   bool
	Null  bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value for nullable columns: nil when absent or null.
func (o OptionalString) Ptr() *string {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

func Some(v string) OptionalString {
	return OptionalString{Set: true, Value: v}
}

func Null() OptionalString {
	return OptionalString{Set: true, Null: true}
}

// EmployeeInput is the request body for create, full update and partial
// update. Read-only fields (id, date_joined) in the payload are ignored.
type EmployeeInput struct {
	Name       OptionalString `json:"name"`
	Email      OptionalString `json:"email"`
	Department OptionalString `json:"department"`
	Role       OptionalString `json:"role"`
}

// Normalized trims surrounding whitespace from every supplied value.
func (in EmployeeInput) Normalized() EmployeeInput {
	trim := func(o OptionalString) OptionalString {
		o.Value = strings.TrimSpace(o.Value)
		return o
	}
	return EmployeeInput{
		Name:       trim(in.Name),
		Email:      trim(in.Email),
		Department: trim(in.Department),
		Role:       trim(in.Role),
	}
}

type EmployeeResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	DateJoined string  `json:"date_joined"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

const DeletedMessage = "Employee deleted successfully."
