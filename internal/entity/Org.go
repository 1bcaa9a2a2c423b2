package entity

import "time"

// OrgKind names one level of the organization hierarchy.
type OrgKind string

const (
	OrgBusinessUnit OrgKind = "business-units"
	OrgDivision     OrgKind = "divisions"
	OrgDepartment   OrgKind = "departments"
	OrgFunction     OrgKind = "functions"
	OrgApplication  OrgKind = "applications"
)

func (k OrgKind) Valid() bool {
	switch k {
	case OrgBusinessUnit, OrgDivision, OrgDepartment, OrgFunction, OrgApplication:
		return true
	}
	return false
}

// ParentKind returns the level a unit of this kind hangs under, if any.
func (k OrgKind) ParentKind() (OrgKind, bool) {
	switch k {
	case OrgDivision:
		return OrgBusinessUnit, true
	case OrgDepartment:
		return OrgDivision, true
	}
	return "", false
}

type OrgUnit struct {
	ID        int64     `json:"id" db:"id"`
	Kind      OrgKind   `json:"kind" db:"-"`
	ParentID  *int64    `json:"parent_id,omitempty" db:"parent_id"`
	Code      string    `json:"code,omitempty" db:"code"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
