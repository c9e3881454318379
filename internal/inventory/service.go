package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Service validates inputs before delegating to the Store.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("inventory: store is required")
	}
	return &Service{store: store}, nil
}

func (s *Service) ListDevices(ctx context.Context) ([]Device, error) {
	return s.store.ListDevices(ctx)
}

func (s *Service) GetDevice(ctx context.Context, id string) (*DeviceDetail, error) {
	return s.store.GetDevice(ctx, id)
}

func (s *Service) CreateDevice(ctx context.Context, in DeviceInput) (Device, error) {
	normalized, err := normalizeDeviceInput(in)
	if err != nil {
		return Device{}, err
	}
	return s.store.CreateDevice(ctx, normalized)
}

func (s *Service) UpdateDevice(ctx context.Context, id string, in DeviceInput) error {
	normalized, err := normalizeDeviceInput(in)
	if err != nil {
		return err
	}
	return s.store.UpdateDevice(ctx, id, normalized)
}

func (s *Service) DeleteDevice(ctx context.Context, id string) error {
	return s.store.DeleteDevice(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context) ([]EmployeeSummary, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*EmployeeDetail, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, upd EmployeeUpdate) error {
	upd.FirstName = strings.TrimSpace(upd.FirstName)
	upd.MiddleName = strings.TrimSpace(upd.MiddleName)
	upd.LastName = strings.TrimSpace(upd.LastName)
	upd.PhoneNumber = strings.TrimSpace(upd.PhoneNumber)
	upd.Email = strings.TrimSpace(strings.ToLower(upd.Email))
	if upd.FirstName == "" || upd.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if upd.Email == "" || !strings.Contains(upd.Email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if upd.PhoneNumber == "" {
		return fmt.Errorf("%w: phone number is required", ErrInvalidInput)
	}
	if upd.Salary < 0 {
		return fmt.Errorf("%w: salary must not be negative", ErrInvalidInput)
	}
	if strings.TrimSpace(upd.PositionID) == "" {
		return fmt.Errorf("%w: position_id is required", ErrInvalidInput)
	}
	return s.store.UpdateEmployee(ctx, id, upd)
}

func normalizeDeviceInput(in DeviceInput) (DeviceInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return DeviceInput{}, fmt.Errorf("%w: device name is required", ErrInvalidInput)
	}
	in.DeviceTypeName = strings.TrimSpace(in.DeviceTypeName)
	if in.DeviceTypeName == "" {
		return DeviceInput{}, fmt.Errorf("%w: device_type_name is required", ErrInvalidInput)
	}
	// Free-form properties are stored verbatim but must at least be JSON.
	if len(in.AdditionalProperties) == 0 {
		in.AdditionalProperties = json.RawMessage("{}")
	} else if !json.Valid(in.AdditionalProperties) {
		return DeviceInput{}, fmt.Errorf("%w: additional_properties must be valid JSON", ErrInvalidInput)
	}
	return in, nil
}
