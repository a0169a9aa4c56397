package employee

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateEmployeePayload is the body of POST /employees.
//
// Both fields are optional and carry no length rule; the database column
// limit is the only constraint. Non-string JSON values are stored as their
// JSON text: {"name":123} stores "123".
type CreateEmployeePayload struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

func (p *CreateEmployeePayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name json.RawMessage `json:"name"`
		Role json.RawMessage `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	name, err := textValue(raw.Name)
	if err != nil {
		return err
	}
	role, err := textValue(raw.Role)
	if err != nil {
		return err
	}

	p.Name, p.Role = name, role
	return nil
}

// textValue turns a raw JSON value into column text. A missing value or
// null yields nil.
func textValue(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	s := buf.String()
	return &s, nil
}

func (p *CreateEmployeePayload) Validate() error {
	return validate.Struct(p)
}

// GetEmployeesQuery has no parameters; GET /employees returns every row.
type GetEmployeesQuery struct{}

func (q *GetEmployeesQuery) Validate() error {
	return nil
}

// GetEmployeeByIDPayload is the path parameter of GET /employees/:id.
// The id only ever comes from the path; body and query values are ignored.
type GetEmployeeByIDPayload struct {
	ID int64 `param:"id" query:"-" json:"-"`
}

func (p *GetEmployeeByIDPayload) Validate() error {
	return validate.Struct(p)
}

// DeleteEmployeePayload is the path parameter of DELETE /employees/:id.
// Any integer is accepted; an id with no row is a no-op. As for
// GetEmployeeByIDPayload, the path is the only source of the id.
type DeleteEmployeePayload struct {
	ID int64 `param:"id" query:"-" json:"-"`
}

func (p *DeleteEmployeePayload) Validate() error {
	return validate.Struct(p)
}
