package handlers

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	minReasonLen = 3
	maxReasonLen = 1000
)

// RegisterValidators installs the domain tags on gin's validator and makes it report json field names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("handlers: unexpected validator engine")
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	for tag, fn := range map[string]validator.Func{
		"survey_status":  validSurveyStatus,
		"question_type":  validQuestionType,
		"user_role":      validRole,
		"takeout_reason": validTakeoutReason,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validSurveyStatus(fl validator.FieldLevel) bool {
	return entity.SurveyStatus(fl.Field().String()).Valid()
}

func validQuestionType(fl validator.FieldLevel) bool {
	return entity.QuestionType(fl.Field().String()).Valid()
}

func validRole(fl validator.FieldLevel) bool {
	return entity.Role(fl.Field().String()).Valid()
}

// validTakeoutReason accepts a non-blank reason of reasonable length.
func validTakeoutReason(fl validator.FieldLevel) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
	return n >= minReasonLen && n <= maxReasonLen
}
