package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the multipart envelope around the file itself.
const multipartOverhead = 64 << 10

type UploadsHandler struct {
	uploads *services.Uploads
	maxSize int64
}

func NewUploadsHandler(uploads *services.Uploads, maxSize int64) *UploadsHandler {
	return &UploadsHandler{uploads: uploads, maxSize: maxSize}
}

func (h *UploadsHandler) Upload(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+multipartOverhead)
	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			fail(c, apperr.E(apperr.KindPayloadTooLarge, "file too large", err))
			return
		}
		fail(c, apperr.E(apperr.KindValidation, "multipart field \"file\" is required", err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	up, err := h.uploads.Upload(c.Request.Context(), actor, fh.Filename, f)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, up)
}

func (h *UploadsHandler) Download(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	up, file, err := h.uploads.Open(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", up.ContentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": up.OriginalName}))
	http.ServeContent(c.Writer, c.Request, up.OriginalName, up.CreatedAt, file)
}

func (h *UploadsHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.uploads.Delete(c.Request.Context(), actor, id); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"id": id})
}
