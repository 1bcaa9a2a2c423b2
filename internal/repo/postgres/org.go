package postgres

import (
	"context"
	"fmt"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
)

type orgTable struct {
	name      string
	hasParent bool
	hasCode   bool
}

var orgTables = map[entity.OrgKind]orgTable{
	entity.OrgBusinessUnit: {name: "business_units"},
	entity.OrgDivision:     {name: "divisions", hasParent: true},
	entity.OrgDepartment:   {name: "departments", hasParent: true},
	entity.OrgFunction:     {name: "functions"},
	entity.OrgApplication:  {name: "applications", hasCode: true},
}

func (t orgTable) selectColumns() string {
	parent := "NULL::BIGINT AS parent_id"
	if t.hasParent {
		parent = "parent_id"
	}
	code := "'' AS code"
	if t.hasCode {
		code = "code"
	}
	return "id, " + parent + ", " + code + ", name, created_at"
}

func lookupOrgTable(kind entity.OrgKind) (orgTable, error) {
	t, ok := orgTables[kind]
	if !ok {
		return orgTable{}, fmt.Errorf("unknown org kind %q", kind)
	}
	return t, nil
}

func (s *Storage) SaveOrgUnit(ctx context.Context, unit *entity.OrgUnit) (int64, error) {
	const op = "storage.postgres.SaveOrgUnit"

	t, err := lookupOrgTable(unit.Kind)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}

	var (
		query string
		args  []any
	)
	switch {
	case t.hasParent:
		query = `INSERT INTO ` + t.name + ` (parent_id, name) VALUES ($1, $2) RETURNING id`
		args = []any{unit.ParentID, unit.Name}
	case t.hasCode:
		query = `INSERT INTO ` + t.name + ` (code, name) VALUES ($1, $2) RETURNING id`
		args = []any{unit.Code, unit.Name}
	default:
		query = `INSERT INTO ` + t.name + ` (name) VALUES ($1) RETURNING id`
		args = []any{unit.Name}
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return 0, fmt.Errorf("%s: %w", op, repo.ErrOrgUnitAlreadyExists)
		case pqForeignKeyViolation:
			return 0, fmt.Errorf("%s: %w", op, repo.ErrReferenceMissing)
		}
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return id, nil
}

// GetOrgUnits lists units of a kind; parentID narrows divisions and departments.
func (s *Storage) GetOrgUnits(ctx context.Context, kind entity.OrgKind, parentID *int64) ([]entity.OrgUnit, error) {
	const op = "storage.postgres.GetOrgUnits"

	t, err := lookupOrgTable(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}

	units := []entity.OrgUnit{}
	query := `SELECT ` + t.selectColumns() + ` FROM ` + t.name
	if t.hasParent && parentID != nil {
		err = s.db.SelectContext(ctx, &units, query+` WHERE parent_id = $1 ORDER BY name`, *parentID)
	} else {
		err = s.db.SelectContext(ctx, &units, query+` ORDER BY name`)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}

	for i := range units {
		units[i].Kind = kind
	}
	return units, nil
}

func (s *Storage) DeleteOrgUnit(ctx context.Context, kind entity.OrgKind, id int64) error {
	const op = "storage.postgres.DeleteOrgUnit"

	t, err := lookupOrgTable(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM `+t.name+` WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, repo.ErrReferenced)
		}
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrOrgUnitNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) MapApplicationDepartment(ctx context.Context, applicationID, departmentID int64) error {
	const op = "storage.postgres.MapApplicationDepartment"

	query := `INSERT INTO application_departments (application_id, department_id) VALUES ($1, $2)`
	return s.insertMapping(ctx, op, query, applicationID, departmentID)
}

func (s *Storage) UnmapApplicationDepartment(ctx context.Context, applicationID, departmentID int64) error {
	const op = "storage.postgres.UnmapApplicationDepartment"

	query := `DELETE FROM application_departments WHERE application_id = $1 AND department_id = $2`
	return s.deleteMapping(ctx, op, query, applicationID, departmentID)
}

func (s *Storage) ApplicationsByDepartment(ctx context.Context, departmentID int64) ([]entity.OrgUnit, error) {
	const op = "storage.postgres.ApplicationsByDepartment"

	query := `SELECT a.id, NULL::BIGINT AS parent_id, a.code, a.name, a.created_at
		FROM applications a
		JOIN application_departments ad ON ad.application_id = a.id
		WHERE ad.department_id = $1
		ORDER BY a.name`
	return s.selectApplications(ctx, op, query, departmentID)
}

func (s *Storage) MapFunctionApplication(ctx context.Context, functionID, applicationID int64) error {
	const op = "storage.postgres.MapFunctionApplication"

	query := `INSERT INTO function_applications (function_id, application_id) VALUES ($1, $2)`
	return s.insertMapping(ctx, op, query, functionID, applicationID)
}

func (s *Storage) UnmapFunctionApplication(ctx context.Context, functionID, applicationID int64) error {
	const op = "storage.postgres.UnmapFunctionApplication"

	query := `DELETE FROM function_applications WHERE function_id = $1 AND application_id = $2`
	return s.deleteMapping(ctx, op, query, functionID, applicationID)
}

func (s *Storage) ApplicationsByFunction(ctx context.Context, functionID int64) ([]entity.OrgUnit, error) {
	const op = "storage.postgres.ApplicationsByFunction"

	query := `SELECT a.id, NULL::BIGINT AS parent_id, a.code, a.name, a.created_at
		FROM applications a
		JOIN function_applications fa ON fa.application_id = a.id
		WHERE fa.function_id = $1
		ORDER BY a.name`
	return s.selectApplications(ctx, op, query, functionID)
}

func (s *Storage) insertMapping(ctx context.Context, op, query string, left, right int64) error {
	if _, err := s.db.ExecContext(ctx, query, left, right); err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", op, repo.ErrMappingAlreadyExists)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, repo.ErrReferenceMissing)
		}
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) deleteMapping(ctx context.Context, op, query string, left, right int64) error {
	res, err := s.db.ExecContext(ctx, query, left, right)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrMappingNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) selectApplications(ctx context.Context, op, query string, id int64) ([]entity.OrgUnit, error) {
	apps := []entity.OrgUnit{}
	if err := s.db.SelectContext(ctx, &apps, query, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	for i := range apps {
		apps[i].Kind = entity.OrgApplication
	}
	return apps, nil
}
