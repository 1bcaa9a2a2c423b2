package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
)

type OrgStorage interface {
	SaveOrgUnit(ctx context.Context, unit *entity.OrgUnit) (int64, error)
	GetOrgUnits(ctx context.Context, kind entity.OrgKind, parentID *int64) ([]entity.OrgUnit, error)
	DeleteOrgUnit(ctx context.Context, kind entity.OrgKind, id int64) error
	MapApplicationDepartment(ctx context.Context, applicationID, departmentID int64) error
	UnmapApplicationDepartment(ctx context.Context, applicationID, departmentID int64) error
	ApplicationsByDepartment(ctx context.Context, departmentID int64) ([]entity.OrgUnit, error)
	MapFunctionApplication(ctx context.Context, functionID, applicationID int64) error
	UnmapFunctionApplication(ctx context.Context, functionID, applicationID int64) error
	ApplicationsByFunction(ctx context.Context, functionID int64) ([]entity.OrgUnit, error)
}

type Org struct {
	log        *slog.Logger
	orgStorage OrgStorage
	audit      *Audit
}

func NewOrg(log *slog.Logger, orgStorage OrgStorage, audit *Audit) *Org {
	return &Org{log: log, orgStorage: orgStorage, audit: audit}
}

var errUnknownKind = apperr.Validation("unknown organization level")

func (o *Org) CreateUnit(ctx context.Context, actor entity.Actor, unit entity.OrgUnit) (int64, error) {
	const op = "services.Org.CreateUnit"

	if !unit.Kind.Valid() {
		return 0, fmt.Errorf("%s: %w", op, errUnknownKind)
	}
	unit.Name = strings.TrimSpace(unit.Name)
	unit.Code = strings.TrimSpace(unit.Code)
	if unit.Name == "" {
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation("name is required"))
	}

	if parent, ok := unit.Kind.ParentKind(); ok {
		if unit.ParentID == nil {
			return 0, fmt.Errorf("%s: %w", op, apperr.Validation(fmt.Sprintf("parent_id of the %s is required", parent)))
		}
	} else {
		unit.ParentID = nil
	}
	if unit.Kind == entity.OrgApplication && unit.Code == "" {
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation("application code is required"))
	}

	id, err := o.orgStorage.SaveOrgUnit(ctx, &unit)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	o.audit.Action(ctx, actor, "org.create", string(unit.Kind), id, entity.LogDetails{"name": unit.Name})
	return id, nil
}

func (o *Org) ListUnits(ctx context.Context, kind entity.OrgKind, parentID *int64) ([]entity.OrgUnit, error) {
	const op = "services.Org.ListUnits"

	if !kind.Valid() {
		return nil, fmt.Errorf("%s: %w", op, errUnknownKind)
	}
	units, err := o.orgStorage.GetOrgUnits(ctx, kind, parentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return units, nil
}

func (o *Org) DeleteUnit(ctx context.Context, actor entity.Actor, kind entity.OrgKind, id int64) error {
	const op = "services.Org.DeleteUnit"

	if !kind.Valid() {
		return fmt.Errorf("%s: %w", op, errUnknownKind)
	}
	if err := o.orgStorage.DeleteOrgUnit(ctx, kind, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	o.audit.Action(ctx, actor, "org.delete", string(kind), id, nil)
	return nil
}

func (o *Org) MapApplicationDepartment(ctx context.Context, applicationID, departmentID int64) error {
	const op = "services.Org.MapApplicationDepartment"

	if err := o.orgStorage.MapApplicationDepartment(ctx, applicationID, departmentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (o *Org) UnmapApplicationDepartment(ctx context.Context, applicationID, departmentID int64) error {
	const op = "services.Org.UnmapApplicationDepartment"

	if err := o.orgStorage.UnmapApplicationDepartment(ctx, applicationID, departmentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (o *Org) ApplicationsByDepartment(ctx context.Context, departmentID int64) ([]entity.OrgUnit, error) {
	const op = "services.Org.ApplicationsByDepartment"

	apps, err := o.orgStorage.ApplicationsByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return apps, nil
}

func (o *Org) MapFunctionApplication(ctx context.Context, functionID, applicationID int64) error {
	const op = "services.Org.MapFunctionApplication"

	if err := o.orgStorage.MapFunctionApplication(ctx, functionID, applicationID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (o *Org) UnmapFunctionApplication(ctx context.Context, functionID, applicationID int64) error {
	const op = "services.Org.UnmapFunctionApplication"

	if err := o.orgStorage.UnmapFunctionApplication(ctx, functionID, applicationID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (o *Org) ApplicationsByFunction(ctx context.Context, functionID int64) ([]entity.OrgUnit, error) {
	const op = "services.Org.ApplicationsByFunction"

	apps, err := o.orgStorage.ApplicationsByFunction(ctx, functionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return apps, nil
}
