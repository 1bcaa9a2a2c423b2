// Package services holds the business rules of the portal. Storage and delivery
// collaborators are consumed through the small interfaces declared next to each service.
package services

//go:generate mockgen -source=audit.go -destination=mocks/audit_mock.go -package=mocks
//go:generate mockgen -source=users.go -destination=mocks/users_mock.go -package=mocks
//go:generate mockgen -source=surveys.go -destination=mocks/surveys_mock.go -package=mocks
//go:generate mockgen -source=responses.go -destination=mocks/responses_mock.go -package=mocks
//go:generate mockgen -source=approvals.go -destination=mocks/approvals_mock.go -package=mocks
//go:generate mockgen -source=operations.go -destination=mocks/operations_mock.go -package=mocks
//go:generate mockgen -source=reports.go -destination=mocks/reports_mock.go -package=mocks
//go:generate mockgen -source=org.go -destination=mocks/org_mock.go -package=mocks
//go:generate mockgen -source=uploads.go -destination=mocks/uploads_mock.go -package=mocks

import (
	"strings"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var errInvalidRange = apperr.Validation("'to' must not be before 'from'")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
