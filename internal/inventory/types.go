// Package inventory covers the device and employee records the service
// manages. It is plain data-access glue; the security-sensitive account
// subsystem lives in internal/auth.
package inventory

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("inventory: not found")
	ErrUnknownDeviceType = errors.New("inventory: unknown device type")
	ErrInvalidInput      = errors.New("inventory: invalid input")
)

// Device is the list projection of a device.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeviceDetail is the full projection, including the employee currently
// holding the device (nil when it sits in storage).
type DeviceDetail struct {
	DeviceTypeName       string           `json:"device_type_name"`
	IsEnabled            bool             `json:"is_enabled"`
	AdditionalProperties json.RawMessage  `json:"additional_properties"`
	CurrentEmployee      *EmployeeSummary `json:"current_employee,omitempty"`
}

// DeviceInput carries create/update fields. DeviceTypeName must resolve to
// an existing device type.
type DeviceInput struct {
	Name                 string          `json:"name"`
	DeviceTypeName       string          `json:"device_type_name"`
	IsEnabled            bool            `json:"is_enabled"`
	AdditionalProperties json.RawMessage `json:"additional_properties"`
}

// EmployeeSummary is the list projection of an employee.
type EmployeeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Position names a job title.
type Position struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployeeDetail joins the employee row with its person and position.
type EmployeeDetail struct {
	PassportNumber string    `json:"passport_number"`
	FirstName      string    `json:"first_name"`
	MiddleName     string    `json:"middle_name,omitempty"`
	LastName       string    `json:"last_name"`
	PhoneNumber    string    `json:"phone_number"`
	Email          string    `json:"email"`
	Salary         float64   `json:"salary"`
	Position       Position  `json:"position"`
	HireDate       time.Time `json:"hire_date"`
}

// EmployeeUpdate carries the mutable person/employee fields.
type EmployeeUpdate struct {
	FirstName   string  `json:"first_name"`
	MiddleName  string  `json:"middle_name,omitempty"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email"`
	Salary      float64 `json:"salary"`
	PositionID  string  `json:"position_id"`
}
