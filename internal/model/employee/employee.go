// Package employee defines the Employee entity and the request payloads
// bound by the employee handlers.
package employee

// Employee is a row of the employees table.
//
// Name and Role are nullable: a create request may omit either field and
// the column is stored as NULL, serialized as JSON null.
type Employee struct {
	ID   int64   `json:"id" db:"id"`
	Name *string `json:"name" db:"name"`
	Role *string `json:"role" db:"role"`
}
