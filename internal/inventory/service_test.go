package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakeStore struct {
	created DeviceInput
	updated EmployeeUpdate
}

func (f *fakeStore) ListDevices(context.Context) ([]Device, error)          { return nil, nil }
func (f *fakeStore) GetDevice(context.Context, string) (*DeviceDetail, error) {
	return nil, ErrNotFound
}
func (f *fakeStore) CreateDevice(_ context.Context, in DeviceInput) (Device, error) {
	f.created = in
	return Device{ID: "dev-1", Name: in.Name}, nil
}
func (f *fakeStore) UpdateDevice(context.Context, string, DeviceInput) error { return nil }
func (f *fakeStore) DeleteDevice(context.Context, string) error              { return nil }
func (f *fakeStore) ListEmployees(context.Context) ([]EmployeeSummary, error) {
	return nil, nil
}
func (f *fakeStore) GetEmployee(context.Context, string) (*EmployeeDetail, error) {
	return nil, ErrNotFound
}
func (f *fakeStore) UpdateEmployee(_ context.Context, _ string, upd EmployeeUpdate) error {
	f.updated = upd
	return nil
}

func TestCreateDeviceDefaultsProperties(t *testing.T) {
	store := &fakeStore{}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dev, err := svc.CreateDevice(context.Background(), DeviceInput{
		Name:           "  ThinkPad X1  ",
		DeviceTypeName: "Laptop",
	})
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	if dev.Name != "ThinkPad X1" {
		t.Fatalf("expected trimmed name, got %q", dev.Name)
	}
	if string(store.created.AdditionalProperties) != "{}" {
		t.Fatalf("expected {} default, got %s", store.created.AdditionalProperties)
	}
}

func TestCreateDeviceValidation(t *testing.T) {
	svc, _ := NewService(&fakeStore{})
	ctx := context.Background()

	if _, err := svc.CreateDevice(ctx, DeviceInput{DeviceTypeName: "Laptop"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := svc.CreateDevice(ctx, DeviceInput{Name: "X1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing type, got %v", err)
	}
	_, err := svc.CreateDevice(ctx, DeviceInput{
		Name: "X1", DeviceTypeName: "Laptop",
		AdditionalProperties: json.RawMessage(`{"ram":`),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for broken JSON, got %v", err)
	}
}

func TestUpdateEmployeeValidation(t *testing.T) {
	store := &fakeStore{}
	svc, _ := NewService(store)
	ctx := context.Background()

	valid := EmployeeUpdate{
		FirstName:   "Jamie",
		LastName:    "Doe",
		PhoneNumber: "+1-555-0100",
		Email:       "Jamie.Doe@Example.COM",
		Salary:      1000,
		PositionID:  "pos-1",
	}
	if err := svc.UpdateEmployee(ctx, "emp-1", valid); err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}
	if store.updated.Email != "jamie.doe@example.com" {
		t.Fatalf("expected lowercased email, got %q", store.updated.Email)
	}

	broken := valid
	broken.Email = "not-an-email"
	if err := svc.UpdateEmployee(ctx, "emp-1", broken); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	broken = valid
	broken.Salary = -1
	if err := svc.UpdateEmployee(ctx, "emp-1", broken); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative salary, got %v", err)
	}
}
