package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/utils"
)

const (
	// DefaultMaxUploadBytes is the 10MB per-file cap.
	DefaultMaxUploadBytes int64 = 10 * 1024 * 1024

	// UploadURLPrefix is where the router serves the upload directory.
	UploadURLPrefix = "/uploads"

	defaultUploadCategory = "file"
	randomSuffixLength    = 6
)

// allowedUploadTypes maps each accepted media type to its file extensions.
// The first extension is the one files are stored under.
var allowedUploadTypes = map[string][]string{
	"image/jpeg":         {".jpg", ".jpeg"},
	"image/png":          {".png"},
	"image/gif":          {".gif"},
	"image/webp":         {".webp"},
	"application/pdf":    {".pdf"},
	"application/msword": {".doc"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {".docx"},
	"application/vnd.ms-excel": {".xls"},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {".xlsx"},
}

// uploadExtension returns the stored extension for mediaType, or false when
// the client's file name carries an extension that does not belong to it.
func uploadExtension(mediaType, fileName string) (string, bool) {
	exts, ok := allowedUploadTypes[mediaType]
	if !ok {
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	if ext == "" {
		return exts[0], true
	}
	for _, e := range exts {
		if e == ext {
			return exts[0], true
		}
	}
	return "", false
}

var allowedUploadCategories = map[string]bool{
	"profile": true,
	"project": true,
	"work":    true,
	"message": true,
}

// UploadInput describes one file of a multipart upload.
type UploadInput struct {
	Category    string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is the public description of a stored file.
type UploadResult struct {
	Success  bool   `json:"success"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

// UploadService writes validated files into a public directory.
type UploadService struct {
	dir      string
	maxBytes int64
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewUploadService(dir string, maxBytes int64, log logrus.FieldLogger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{dir: dir, maxBytes: maxBytes, log: log, now: time.Now}
}

// Dir is the directory files are written to.
func (s *UploadService) Dir() string {
	return s.dir
}

// MaxBytes is the per-file size cap.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates and stores one file. The declared content type must be
// allowed and agree with the file name's extension; the stored name always
// takes the extension of the declared type. Content is not sniffed.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.Body == nil || in.FileName == "" {
		return nil, invalid("No file provided")
	}
	if in.Size > s.maxBytes {
		return nil, invalid("File size exceeds %dMB limit", s.maxBytes/(1024*1024))
	}

	mediaType, _, err := mime.ParseMediaType(in.ContentType)
	if err != nil {
		return nil, invalid("File type not allowed")
	}
	mediaType = strings.ToLower(mediaType)
	ext, ok := uploadExtension(mediaType, in.FileName)
	if !ok {
		return nil, invalid("File type not allowed")
	}

	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "" {
		category = defaultUploadCategory
	} else if !allowedUploadCategories[category] {
		return nil, invalid("type must be one of: profile, project, work, message")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := s.storedName(category, ext)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	written, err := s.write(filepath.Join(s.dir, name), in.Body)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"file": name,
		"type": mediaType,
		"size": written,
	}).Info("File uploaded")

	return &UploadResult{
		Success:  true,
		FileName: filepath.Base(in.FileName),
		FileURL:  UploadURLPrefix + "/" + name,
		FileType: mediaType,
		FileSize: written,
	}, nil
}

// storedName builds {category}-{unixMillis}-{random}{ext}.
func (s *UploadService) storedName(category, ext string) (string, error) {
	suffix, err := utils.RandomString(randomSuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s%s", category, s.now().UnixMilli(), suffix, ext), nil
}

// write copies at most maxBytes from body; a longer body is rejected and the
// partial file removed.
func (s *UploadService) write(path string, body io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create upload file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(body, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		_ = os.Remove(path)
		return 0, fmt.Errorf("write upload file: %w", err)
	case closeErr != nil:
		_ = os.Remove(path)
		return 0, fmt.Errorf("close upload file: %w", closeErr)
	case n > s.maxBytes:
		_ = os.Remove(path)
		return 0, invalid("File size exceeds %dMB limit", s.maxBytes/(1024*1024))
	}
	return n, nil
}
