package repo

import "github.com/14kear/csi-portal/internal/apperr"

var (
	ErrUserNotFound             = apperr.NotFound("user not found")
	ErrUserAlreadyExists        = apperr.Conflict("user already exists")
	ErrOrgUnitNotFound          = apperr.NotFound("org unit not found")
	ErrOrgUnitAlreadyExists     = apperr.Conflict("org unit already exists")
	ErrMappingAlreadyExists     = apperr.Conflict("mapping already exists")
	ErrMappingNotFound          = apperr.NotFound("mapping not found")
	ErrSurveyNotFound           = apperr.NotFound("survey not found")
	ErrQuestionNotFound         = apperr.NotFound("question not found")
	ErrResponseNotFound         = apperr.NotFound("response not found")
	ErrDuplicateResponse        = apperr.Conflict("a response for this survey and application was already submitted")
	ErrQuestionResponseNotFound = apperr.NotFound("answer not found")
	ErrOperationNotFound        = apperr.NotFound("scheduled operation not found")
	ErrUploadNotFound           = apperr.NotFound("upload not found")
	ErrReferenceMissing         = apperr.Validation("referenced record does not exist")
	ErrReferenced               = apperr.Conflict("record is still referenced")

	// ErrStatusChanged is returned when a guarded status update matched no row
	// because the record moved to another status concurrently.
	ErrStatusChanged = apperr.Conflict("status changed concurrently")
)
