package email

import (
	"fmt"
	"strconv"

	"github.com/deppfellow/employee-app/internal/model/employee"
)

// SendEmployeeCreatedEmail notifies to that a new employee record exists.
// Missing name or role values are rendered as "-".
func (c *Client) SendEmployeeCreatedEmail(to string, e employee.Employee) error {
	data := map[string]string{
		"EmployeeID":   strconv.FormatInt(e.ID, 10),
		"EmployeeName": valueOrDash(e.Name),
		"EmployeeRole": valueOrDash(e.Role),
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("New employee: %s", data["EmployeeName"]),
		TemplateEmployeeCreated,
		data,
	)
}

func valueOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
