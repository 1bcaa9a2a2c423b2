// Package handlers adapts the services to gin: request binding, parameter parsing and the response envelope.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperr.E(apperr.KindPayloadTooLarge, "request body too large", err)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return apperr.E(apperr.KindValidation, strings.Join(msgs, "; "), err)
	}
	return apperr.E(apperr.KindValidation, "invalid request body", err)
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, apperr.Validation("invalid "+name))
		return 0, false
	}
	return id, true
}

// optionalID parses a positive integer query parameter. An absent parameter yields nil.
func optionalID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fail(c, apperr.Validation("invalid "+name))
		return nil, false
	}
	return &id, true
}

func requiredID(c *gin.Context, name string) (int64, bool) {
	id, ok := optionalID(c, name)
	if !ok {
		return 0, false
	}
	if id == nil {
		fail(c, apperr.Validation(name+" is required"))
		return 0, false
	}
	return *id, true
}

func optionalTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		fail(c, apperr.Validation(name+" must be an RFC3339 timestamp"))
		return nil, false
	}
	return &t, true
}

func pageQuery(c *gin.Context) (entity.Page, bool) {
	var page entity.Page
	for name, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			fail(c, apperr.Validation("invalid "+name))
			return entity.Page{}, false
		}
		*dst = v
	}
	return page.Normalize(), true
}

func currentActor(c *gin.Context) (entity.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		fail(c, apperr.Authentication("unauthorized"))
	}
	return actor, ok
}
