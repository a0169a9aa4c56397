package email

// PreviewData contains sample data for every template, keyed by template
// name and then by template variable.
var PreviewData = map[Template]map[string]string{
	TemplateEmployeeCreated: {
		"EmployeeID":   "1",
		"EmployeeName": "Alice",
		"EmployeeRole": "Engineer",
	},
}
