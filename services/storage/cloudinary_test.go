package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpload struct {
	calls  int
	params uploader.UploadParams
	result *uploader.UploadResult
	err    error
}

func (f *fakeUpload) Upload(_ context.Context, _ interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.calls++
	f.params = params
	return f.result, f.err
}

const pngURI = "data:image/png;base64,iVBORw0KGgo="

func TestSaveUploadsDataURI(t *testing.T) {
	up := &fakeUpload{result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/receipt.png"}}
	store := &CloudinaryReceiptStore{upload: up}

	ref, err := store.Save(context.Background(), "b1", pngURI)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/receipt.png", ref)
	assert.Equal(t, "receipts/b1", up.params.Folder)
}

func TestSaveKeepsURLs(t *testing.T) {
	up := &fakeUpload{}
	store := &CloudinaryReceiptStore{upload: up}

	ref, err := store.Save(context.Background(), "b1", "https://example.com/r.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/r.jpg", ref)
	assert.Zero(t, up.calls)
}

func TestSaveReportsUploadFailure(t *testing.T) {
	store := &CloudinaryReceiptStore{upload: &fakeUpload{err: errors.New("timeout")}}
	_, err := store.Save(context.Background(), "b1", pngURI)
	assert.Error(t, err)
}

func TestIsDataURI(t *testing.T) {
	assert.True(t, IsDataURI(pngURI))
	assert.False(t, IsDataURI("https://example.com/r.jpg"))
	assert.False(t, IsDataURI("data:text/plain,hello"))
}
