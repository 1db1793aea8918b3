package filestorage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectResourceType(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   ResourceType
	}{
		{"png", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}, ResourceImage},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, ResourceImage},
		{"gif", []byte("GIF89a"), ResourceImage},
		{"mp4", append([]byte{0x00, 0x00, 0x00, 0x20}, []byte("ftypisom")...), ResourceVideo},
		{"mpeg", []byte{0x00, 0x00, 0x01, 0xba}, ResourceVideo},
		{"pdf", []byte("%PDF-1.7"), ResourceAuto},
		{"empty", nil, ResourceAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectResourceType(tt.header))
		})
	}
}

func TestPublicIDFromURL(t *testing.T) {
	assert.Equal(t, "posts/7/abc", PublicIDFromURL("https://res.cloudinary.com/demo/image/upload/v1712345/posts/7/abc.png"))
	assert.Equal(t, "profiles/1/me", PublicIDFromURL("https://res.cloudinary.com/demo/image/upload/profiles/1/me.jpg"))
	assert.Equal(t, "v1", PublicIDFromURL("https://res.cloudinary.com/demo/image/upload/v1.png"))
	assert.Equal(t, "", PublicIDFromURL("https://example.com/static/a.png"))
}

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/uploads/", zerolog.Nop())
	require.NoError(t, err)

	res, err := ls.Upload(context.Background(), UploadInput{
		Reader:       strings.NewReader("hello"),
		Filename:     "Me.PNG",
		Folder:       "profiles/1",
		ResourceType: ResourceImage,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.PublicID, "profiles/1/"))
	assert.True(t, strings.HasSuffix(res.PublicID, ".png"))
	assert.Equal(t, "http://localhost:8080/uploads/"+res.PublicID, res.URL)
	assert.Equal(t, res.PublicID, ls.PublicIDFromURL(res.URL))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.PublicID)))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, ls.Delete(context.Background(), res.PublicID))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.PublicID)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.Delete(context.Background(), res.PublicID), "deleting twice succeeds")
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads", zerolog.Nop())
	require.NoError(t, err)

	_, err = ls.Upload(context.Background(), UploadInput{Reader: strings.NewReader("x"), Folder: "../etc"})
	assert.Error(t, err)
	assert.Error(t, ls.Delete(context.Background(), "../../passwd"))
	assert.ErrorIs(t, ls.Delete(context.Background(), ""), ErrEmptyPublicID)
}

type fakeUploader struct {
	uploadParams  uploader.UploadParams
	uploadResult  *uploader.UploadResult
	destroyParams uploader.DestroyParams
	destroyResult *uploader.DestroyResult
	err           error
}

func (f *fakeUploader) Upload(_ context.Context, _ interface{}, p uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploadParams = p
	return f.uploadResult, f.err
}

func (f *fakeUploader) Destroy(_ context.Context, p uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyParams = p
	return f.destroyResult, f.err
}

func TestCloudinaryStorageUpload(t *testing.T) {
	fake := &fakeUploader{uploadResult: &uploader.UploadResult{
		SecureURL:    "https://res.cloudinary.com/demo/video/upload/v1/posts/3/clip.mp4",
		PublicID:     "posts/3/clip",
		ResourceType: "video",
	}}
	cs := &CloudinaryStorage{upl: fake, logger: zerolog.Nop()}

	res, err := cs.Upload(context.Background(), UploadInput{Reader: strings.NewReader("x"), Folder: "posts/3", ResourceType: ResourceVideo})
	require.NoError(t, err)
	assert.Equal(t, "posts/3/clip", res.PublicID)
	assert.Equal(t, ResourceVideo, res.ResourceType)
	assert.Equal(t, "posts/3", fake.uploadParams.Folder)
	assert.Equal(t, "video", fake.uploadParams.ResourceType)
	require.NotNil(t, fake.uploadParams.Overwrite)
	assert.True(t, *fake.uploadParams.Overwrite)
}

func TestCloudinaryStorageUploadErrors(t *testing.T) {
	cs := &CloudinaryStorage{upl: &fakeUploader{err: errors.New("timeout")}, logger: zerolog.Nop()}
	_, err := cs.Upload(context.Background(), UploadInput{Reader: strings.NewReader("x")})
	assert.ErrorContains(t, err, "timeout")

	cs.upl = &fakeUploader{uploadResult: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}
	_, err = cs.Upload(context.Background(), UploadInput{Reader: strings.NewReader("x")})
	assert.ErrorContains(t, err, "Invalid image file")
}

func TestCloudinaryStorageDelete(t *testing.T) {
	fake := &fakeUploader{destroyResult: &uploader.DestroyResult{Result: "ok"}}
	cs := &CloudinaryStorage{upl: fake, logger: zerolog.Nop()}

	require.NoError(t, cs.Delete(context.Background(), "profiles/1/old"))
	assert.Equal(t, "profiles/1/old", fake.destroyParams.PublicID)

	fake.destroyResult = &uploader.DestroyResult{Result: "not found"}
	assert.NoError(t, cs.Delete(context.Background(), "profiles/1/old"))

	fake.destroyResult = &uploader.DestroyResult{Result: "error"}
	assert.Error(t, cs.Delete(context.Background(), "profiles/1/old"))

	assert.ErrorIs(t, cs.Delete(context.Background(), ""), ErrEmptyPublicID)
}
