package domain

// Department represents an organizational unit that budgets are allocated to
// and that journal lines are attributed to (e.g. "Science", "Administration").
type Department struct {
	DepartmentID string `json:"departmentID"` // Primary Key (UUID)
	Code         string `json:"code"`         // Unique short code
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
