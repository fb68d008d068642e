package models

// Department is the database row shape for the departments table.
type Department struct {
	DepartmentID string `json:"departmentID"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
