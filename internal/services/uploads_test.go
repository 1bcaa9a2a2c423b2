package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services/mocks"
	"github.com/14kear/csi-portal/internal/uploads"
	"github.com/14kear/csi-portal/utils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploads_UploadOpenDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store, err := uploads.New(t.TempDir(), 1<<20, []string{"image/png"})
	require.NoError(t, err)
	us := mocks.NewMockUploadStorage(ctrl)
	u := NewUploads(utils.Discard(), us, store, nil)
	ctx := context.Background()

	var saved entity.Upload
	us.EXPECT().SaveUpload(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, up *entity.Upload) (int64, error) {
			saved = *up
			return 5, nil
		})

	up, err := u.Upload(ctx, admin, "../../hero.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, int64(5), up.ID)
	assert.Equal(t, "hero.png", up.OriginalName)
	assert.Equal(t, "image/png", up.ContentType)
	assert.Equal(t, admin.ID, up.UploadedBy)

	saved.ID = 5
	us.EXPECT().GetUploadByID(gomock.Any(), int64(5)).Return(saved, nil)
	_, f, err := u.Open(ctx, 5)
	require.NoError(t, err)
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, pngHeader, content)

	us.EXPECT().GetUploadByID(gomock.Any(), int64(5)).Return(saved, nil)
	us.EXPECT().DeleteUpload(gomock.Any(), int64(5)).Return(nil)
	require.NoError(t, u.Delete(ctx, admin, 5))

	_, err = store.Open(saved.StoredName)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestUploads_RejectedTypeIsNotStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store, err := uploads.New(t.TempDir(), 1<<20, []string{"image/png"})
	require.NoError(t, err)
	u := NewUploads(utils.Discard(), mocks.NewMockUploadStorage(ctrl), store, nil)

	_, err = u.Upload(context.Background(), admin, "page.html", bytes.NewReader([]byte("<html><body>hi</body></html>")))
	assert.Equal(t, apperr.KindUnsupportedMediaType, apperr.KindOf(err))
}

func TestUploads_FailedInsertRemovesFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := mocks.NewMockFileStore(ctrl)
	us := mocks.NewMockUploadStorage(ctrl)
	u := NewUploads(utils.Discard(), us, files, nil)

	files.EXPECT().Save(gomock.Any()).Return(uploads.Stored{Name: "abc.png", ContentType: "image/png", Size: 10}, nil)
	us.EXPECT().SaveUpload(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
	files.EXPECT().Remove("abc.png").Return(nil)

	_, err := u.Upload(context.Background(), admin, "a.png", bytes.NewReader(pngHeader))
	assert.Error(t, err)
}
