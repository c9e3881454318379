package inventory

import "context"

// Store describes the persistence operations behind the inventory surface.
// Implementations return ErrNotFound for missing rows and
// ErrUnknownDeviceType when a device references an unresolvable type name.
type Store interface {
	ListDevices(ctx context.Context) ([]Device, error)
	GetDevice(ctx context.Context, id string) (*DeviceDetail, error)
	CreateDevice(ctx context.Context, in DeviceInput) (Device, error)
	UpdateDevice(ctx context.Context, id string, in DeviceInput) error
	DeleteDevice(ctx context.Context, id string) error

	ListEmployees(ctx context.Context) ([]EmployeeSummary, error)
	GetEmployee(ctx context.Context, id string) (*EmployeeDetail, error)
	UpdateEmployee(ctx context.Context, id string, upd EmployeeUpdate) error
}
