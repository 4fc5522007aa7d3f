package cli

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/diary/internal/client/client"
	"github.com/dmitrijs2005/diary/internal/client/models"
	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	es := &fakeEntries{entries: []models.Entry{
		{ID: "1", Title: "Rain", Writer: "ann", Date: "2024-05-01"},
		{ID: "2", Title: "Sun", Writer: "bob", Date: "2024-05-02"},
	}}
	a, out := newTestApp(nil, es, "")

	require.NoError(t, a.List(context.Background()))
	assert.Equal(t, "1  2024-05-01  \"Rain\" by ann\n2  2024-05-02  \"Sun\" by bob\n", out.String())
}

func TestList_Empty(t *testing.T) {
	a, out := newTestApp(nil, &fakeEntries{}, "")

	require.NoError(t, a.List(context.Background()))
	assert.Equal(t, "No entries\n", out.String())
}

func TestList_UnauthorizedLogsOut(t *testing.T) {
	es := &fakeEntries{err: &client.APIError{Status: http.StatusUnauthorized, Detail: "Not authenticated"}}
	a, out := newTestApp(nil, es, "")
	a.setUserName("alice")

	require.ErrorIs(t, a.List(context.Background()), common.ErrorUnauthorized)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Error: Not authenticated")
}

func TestAdd(t *testing.T) {
	es := &fakeEntries{entry: &models.Entry{ID: "42"}}
	a, out := newTestApp(nil, es, "Rain\nann\n2024-05-01\nfirst line\nsecond line\n\n\n")

	require.NoError(t, a.Add(context.Background()))

	in := es.lastInput
	require.NotNil(t, in.Title)
	require.NotNil(t, in.Image)
	assert.Equal(t, "Rain", *in.Title)
	assert.Equal(t, "ann", *in.Writer)
	assert.Equal(t, "2024-05-01", *in.Date)
	assert.Equal(t, "first line\nsecond line", *in.Text)
	assert.Equal(t, "", *in.Image)
	assert.Contains(t, out.String(), "Created 42")
}

func TestAdd_InputEndsEarly(t *testing.T) {
	es := &fakeEntries{entry: &models.Entry{ID: "42"}}
	a, _ := newTestApp(nil, es, "Rain\n")

	require.Error(t, a.Add(context.Background()))
	assert.Nil(t, es.lastInput.Title, "nothing must be sent")
}

func TestEdit_OnlyChangedFields(t *testing.T) {
	es := &fakeEntries{entry: &models.Entry{ID: "7", Title: "Rain", Text: "dry"}}
	a, out := newTestApp(nil, es, "7\n\n\n\ndry\n\n")

	require.NoError(t, a.Edit(context.Background()))
	assert.Equal(t, "7", es.lastID)
	assert.Nil(t, es.lastInput.Title)
	assert.Nil(t, es.lastInput.Writer)
	assert.Nil(t, es.lastInput.Date)
	require.NotNil(t, es.lastInput.Text)
	assert.Equal(t, "dry", *es.lastInput.Text)
	assert.Nil(t, es.lastInput.Image)
	assert.Contains(t, out.String(), "Updated 7")
}

func TestEdit_NotFound(t *testing.T) {
	es := &fakeEntries{err: &client.APIError{Status: http.StatusNotFound, Detail: "Entry not found"}}
	a, out := newTestApp(nil, es, "nope\n\n\n\n\n\n")

	require.ErrorIs(t, a.Edit(context.Background()), common.ErrorNotFound)
	assert.Contains(t, out.String(), "Error: Entry not found")
}

func TestDelete(t *testing.T) {
	es := &fakeEntries{}
	a, out := newTestApp(nil, es, "7\n")

	require.NoError(t, a.Delete(context.Background()))
	assert.Equal(t, "7", es.lastID)
	assert.Contains(t, out.String(), "Entry deleted successfully")

	es.err = &client.APIError{Status: http.StatusNotFound, Detail: "Entry not found"}
	a.reader = rdr("7\n")
	require.ErrorIs(t, a.Delete(context.Background()), common.ErrorNotFound)
}

func TestImages(t *testing.T) {
	es := &fakeEntries{
		upload: &models.ImageUpload{Key: "diary/2024/5/1/x", UploadURL: "http://s3/put"},
		url:    "http://s3/get",
	}
	a, out := newTestApp(nil, es, "\ndiary/2024/5/1/x\n")

	require.NoError(t, a.AddImage(context.Background()))
	assert.Contains(t, out.String(), "key: diary/2024/5/1/x")
	assert.Contains(t, out.String(), "'http://s3/put'")

	require.NoError(t, a.ShowImage(context.Background()))
	assert.Equal(t, "diary/2024/5/1/x", es.lastID)
	assert.Contains(t, out.String(), "http://s3/get\n")

	es.err = &client.APIError{Status: http.StatusServiceUnavailable, Detail: "Image storage is not configured"}
	a.reader = rdr("\n")
	require.ErrorIs(t, a.AddImage(context.Background()), common.ErrorStorageDisabled)
}

func TestAddImage_UploadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(path, []byte("meow"), 0o600))

	es := &fakeEntries{upload: &models.ImageUpload{Key: "diary/k"}}
	a, out := newTestApp(nil, es, path+"\n")

	require.NoError(t, a.AddImage(context.Background()))
	assert.Equal(t, []byte("meow"), es.lastData)
	assert.Contains(t, out.String(), "Uploaded, key: diary/k")
}

func TestAddImage_MissingFile(t *testing.T) {
	es := &fakeEntries{upload: &models.ImageUpload{Key: "diary/k"}}
	a, out := newTestApp(nil, es, filepath.Join(t.TempDir(), "none.png")+"\n")

	require.Error(t, a.AddImage(context.Background()))
	assert.Nil(t, es.lastData)
	assert.Contains(t, out.String(), "Error:")
}
