package email

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateEmployeeCreated corresponds to templates/employee_created.html
	TemplateEmployeeCreated Template = "employee_created"
)
