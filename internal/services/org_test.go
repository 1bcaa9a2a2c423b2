package services

import (
	"context"
	"testing"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
	"github.com/14kear/csi-portal/internal/services/mocks"
	"github.com/14kear/csi-portal/utils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrg_CreateUnitValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockOrgStorage(ctrl)
	o := NewOrg(utils.Discard(), st, nil)
	ctx := context.Background()

	_, err := o.CreateUnit(ctx, admin, entity.OrgUnit{Kind: "teams", Name: "X"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = o.CreateUnit(ctx, admin, entity.OrgUnit{Kind: entity.OrgDivision, Name: "Retail"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "division needs a business unit")

	_, err = o.CreateUnit(ctx, admin, entity.OrgUnit{Kind: entity.OrgApplication, Name: "CRM"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "application needs a code")

	_, err = o.CreateUnit(ctx, admin, entity.OrgUnit{Kind: entity.OrgFunction, Name: "  "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestOrg_CreateUnitDropsParentOfTopLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockOrgStorage(ctrl)
	o := NewOrg(utils.Discard(), st, nil)
	parent := int64(3)

	st.EXPECT().SaveOrgUnit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, unit *entity.OrgUnit) (int64, error) {
			assert.Nil(t, unit.ParentID)
			assert.Equal(t, "Finance", unit.Name)
			return 8, nil
		})

	id, err := o.CreateUnit(context.Background(), admin, entity.OrgUnit{Kind: entity.OrgFunction, Name: " Finance ", ParentID: &parent})
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestOrg_DuplicatesAndMissingReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockOrgStorage(ctrl)
	o := NewOrg(utils.Discard(), st, nil)
	ctx := context.Background()

	st.EXPECT().MapApplicationDepartment(gomock.Any(), int64(1), int64(2)).Return(repo.ErrMappingAlreadyExists)
	err := o.MapApplicationDepartment(ctx, 1, 2)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	st.EXPECT().MapFunctionApplication(gomock.Any(), int64(4), int64(99)).Return(repo.ErrReferenceMissing)
	err = o.MapFunctionApplication(ctx, 4, 99)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	st.EXPECT().DeleteOrgUnit(gomock.Any(), entity.OrgDepartment, int64(5)).Return(repo.ErrReferenced)
	err = o.DeleteUnit(ctx, admin, entity.OrgDepartment, 5)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
