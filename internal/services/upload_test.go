package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/portfolio-backend/internal/logger"
)

func newUploads(t *testing.T) *UploadService {
	t.Helper()
	return NewUploadService(filepath.Join(t.TempDir(), "uploads"), 0, logger.Discard())
}

func TestUploadAcceptsPNG(t *testing.T) {
	svc := newUploads(t)
	body := bytes.Repeat([]byte{0x89}, 2*1024*1024)

	res, err := svc.Upload(context.Background(), UploadInput{
		Category:    "project",
		FileName:    "Screen Shot.PNG",
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        bytes.NewReader(body),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Screen Shot.PNG", res.FileName)
	assert.Equal(t, "image/png", res.FileType)
	assert.EqualValues(t, len(body), res.FileSize)
	assert.True(t, strings.HasPrefix(res.FileURL, "/uploads/"))
	assert.Regexp(t, regexp.MustCompile(`^/uploads/project-\d+-[0-9a-z]{6}\.png$`), res.FileURL)

	info, err := os.Stat(filepath.Join(svc.Dir(), strings.TrimPrefix(res.FileURL, "/uploads/")))
	require.NoError(t, err)
	assert.EqualValues(t, len(body), info.Size())
}

func TestUploadRejections(t *testing.T) {
	svc := newUploads(t)
	big := int64(11 * 1024 * 1024)

	cases := map[string]UploadInput{
		"no file":        {Category: "project", ContentType: "image/png"},
		"too large":      {Category: "project", FileName: "big.png", ContentType: "image/png", Size: big, Body: bytes.NewReader(nil)},
		"executable":     {Category: "project", FileName: "setup.exe", ContentType: "application/x-msdownload", Size: 10, Body: strings.NewReader("MZ")},
		"exe as png":     {Category: "project", FileName: "setup.exe", ContentType: "image/png", Size: 2, Body: strings.NewReader("MZ")},
		"html as png":    {Category: "message", FileName: "x.html", ContentType: "image/png", Size: 8, Body: strings.NewReader("<script>")},
		"no mime":        {Category: "project", FileName: "a.png", Size: 10, Body: strings.NewReader("x")},
		"bad category":   {Category: "../etc", FileName: "a.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x")},
		"lying size":     {Category: "work", FileName: "a.png", ContentType: "image/png", Size: 1, Body: bytes.NewReader(make([]byte, big))},
		"pdf named docx": {Category: "work", FileName: "cv.docx", ContentType: "application/pdf", Size: 1, Body: strings.NewReader("x")},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), input)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "got %v", err)
		})
	}

	entries, _ := os.ReadDir(svc.Dir())
	assert.Empty(t, entries, "rejected uploads leave nothing behind")
}

func TestUploadDefaultsCategoryAndParsesParams(t *testing.T) {
	svc := newUploads(t)

	res, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "notes.pdf",
		ContentType: "Application/PDF; charset=binary",
		Size:        3,
		Body:        strings.NewReader("pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.FileType)
	assert.True(t, strings.HasPrefix(res.FileURL, "/uploads/file-"))
}

func TestUploadExtensionFollowsMediaType(t *testing.T) {
	svc := newUploads(t)

	cases := []struct {
		fileName, contentType, wantExt string
	}{
		{"photo.JPEG", "image/jpeg", ".jpg"},
		{"photo.jpg", "image/jpeg", ".jpg"},
		{"avatar", "image/png", ".png"},
		{"report.XLSX", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
	}
	for _, tc := range cases {
		t.Run(tc.fileName, func(t *testing.T) {
			res, err := svc.Upload(context.Background(), UploadInput{
				Category:    "profile",
				FileName:    tc.fileName,
				ContentType: tc.contentType,
				Size:        1,
				Body:        strings.NewReader("x"),
			})
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(res.FileURL, tc.wantExt), res.FileURL)
			assert.Equal(t, tc.fileName, res.FileName)
		})
	}
}
