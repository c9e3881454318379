package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"devicemanager.org/internal/ids"
	"devicemanager.org/internal/inventory"
)

var _ inventory.Store = (*InventoryStore)(nil)

// InventoryStore persists devices, device types and employees.
type InventoryStore struct {
	db *sql.DB
}

func (s *InventoryStore) ListDevices(ctx context.Context) ([]inventory.Device, error) {
	rows, err := s.db.QueryContext(ctx, `select id, name from device order by name`)
	if err != nil {
		return nil, storeErr("list devices", err)
	}
	defer rows.Close()

	var devices []inventory.Device
	for rows.Next() {
		var d inventory.Device
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, storeErr("list devices", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list devices", err)
	}
	return devices, nil
}

func (s *InventoryStore) GetDevice(ctx context.Context, id string) (*inventory.DeviceDetail, error) {
	var (
		detail   inventory.DeviceDetail
		props    []byte
		holderID sql.NullString
		holder   sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		select dt.name, d.is_enabled, d.additional_properties,
		       e.id, concat_ws(' ', p.first_name, p.last_name)
		from device d
		join device_type dt on dt.id = d.device_type_id
		left join device_employee de on de.device_id = d.id and de.return_date is null
		left join employee e on e.id = de.employee_id
		left join person p on p.id = e.person_id
		where d.id = $1
	`, id).Scan(&detail.DeviceTypeName, &detail.IsEnabled, &props, &holderID, &holder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inventory.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get device", err)
	}
	if len(props) == 0 {
		props = []byte("{}")
	}
	detail.AdditionalProperties = json.RawMessage(props)
	if holderID.Valid {
		detail.CurrentEmployee = &inventory.EmployeeSummary{ID: holderID.String, Name: holder.String}
	}
	return &detail, nil
}

func (s *InventoryStore) CreateDevice(ctx context.Context, in inventory.DeviceInput) (inventory.Device, error) {
	typeID, err := s.deviceTypeID(ctx, in.DeviceTypeName)
	if err != nil {
		return inventory.Device{}, err
	}
	device := inventory.Device{ID: ids.New(), Name: in.Name}
	_, err = s.db.ExecContext(ctx, `
		insert into device (id, name, is_enabled, additional_properties, device_type_id)
		values ($1, $2, $3, $4, $5)
	`, device.ID, device.Name, in.IsEnabled, []byte(in.AdditionalProperties), typeID)
	if err != nil {
		return inventory.Device{}, storeErr("insert device", err)
	}
	return device, nil
}

func (s *InventoryStore) UpdateDevice(ctx context.Context, id string, in inventory.DeviceInput) error {
	typeID, err := s.deviceTypeID(ctx, in.DeviceTypeName)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update device
		set name = $2, is_enabled = $3, additional_properties = $4, device_type_id = $5
		where id = $1
	`, id, in.Name, in.IsEnabled, []byte(in.AdditionalProperties), typeID)
	if err != nil {
		return storeErr("update device", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("update device", err)
	}
	if affected == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

func (s *InventoryStore) DeleteDevice(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from device where id = $1`, id)
	if err != nil {
		return storeErr("delete device", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete device", err)
	}
	if affected == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

func (s *InventoryStore) deviceTypeID(ctx context.Context, name string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `select id from device_type where name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", inventory.ErrUnknownDeviceType
	}
	if err != nil {
		return "", storeErr("resolve device type", err)
	}
	return id, nil
}

func (s *InventoryStore) ListEmployees(ctx context.Context) ([]inventory.EmployeeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		select e.id, concat_ws(' ', p.first_name, p.last_name)
		from employee e
		join person p on p.id = e.person_id
		order by p.last_name, p.first_name
	`)
	if err != nil {
		return nil, storeErr("list employees", err)
	}
	defer rows.Close()

	var employees []inventory.EmployeeSummary
	for rows.Next() {
		var e inventory.EmployeeSummary
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, storeErr("list employees", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list employees", err)
	}
	return employees, nil
}

func (s *InventoryStore) GetEmployee(ctx context.Context, id string) (*inventory.EmployeeDetail, error) {
	var (
		detail inventory.EmployeeDetail
		middle sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		select p.passport_number, p.first_name, p.middle_name, p.last_name,
		       p.phone_number, p.email, e.salary, e.hire_date, pos.id, pos.name
		from employee e
		join person p on p.id = e.person_id
		join position pos on pos.id = e.position_id
		where e.id = $1
	`, id).Scan(
		&detail.PassportNumber, &detail.FirstName, &middle, &detail.LastName,
		&detail.PhoneNumber, &detail.Email, &detail.Salary, &detail.HireDate,
		&detail.Position.ID, &detail.Position.Name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inventory.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get employee", err)
	}
	detail.MiddleName = middle.String
	return &detail, nil
}

// UpdateEmployee writes the person and employee rows in one transaction.
func (s *InventoryStore) UpdateEmployee(ctx context.Context, id string, upd inventory.EmployeeUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("update employee", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		update person
		set first_name = $2, middle_name = nullif($3, ''), last_name = $4,
		    phone_number = $5, email = $6
		where id = (select person_id from employee where id = $1)
	`, id, upd.FirstName, upd.MiddleName, upd.LastName, upd.PhoneNumber, upd.Email)
	if err != nil {
		return storeErr("update employee person", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("update employee person", err)
	}
	if affected == 0 {
		return inventory.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		update employee set salary = $2, position_id = $3 where id = $1
	`, id, upd.Salary, upd.PositionID)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
			return inventory.ErrInvalidInput
		}
		return storeErr("update employee", err)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("update employee", err)
	}
	return nil
}
