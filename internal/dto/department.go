package dto

import "github.com/campusbooks/campus_ledger_app/internal/core/domain"

// CreateDepartmentRequest defines the payload for creating a department.
type CreateDepartmentRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// DepartmentResponse defines the data returned for a department.
type DepartmentResponse struct {
	DepartmentID string `json:"departmentID"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
}

// ToDepartmentResponse converts a domain Department to its response DTO.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID: d.DepartmentID,
		Code:         d.Code,
		Name:         d.Name,
		IsActive:     d.IsActive,
	}
}

// ToDepartmentResponses converts a slice of domain Departments to response DTOs.
func ToDepartmentResponses(departments []domain.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, len(departments))
	for i, d := range departments {
		responses[i] = ToDepartmentResponse(&d)
	}
	return responses
}
