package models

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// TimestampLayout is the UTC millisecond layout of uploadDate and timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// UploadRecord is one entry of the local upload history. Records are
// appended after a successful upload and never modified.
type UploadRecord struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	UploadDate  string `json:"uploadDate"`
	UserName    string `json:"userName"`
	DownloadURL string `json:"downloadUrl"`
}

// UploadMetadata is the JSON sidecar stored next to every uploaded object.
// Field order matches the wire document.
type UploadMetadata struct {
	UUID      string `json:"uuid"`
	UserName  string `json:"userName"`
	Timestamp string `json:"timestamp"`
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize"`
	FileType  string `json:"fileType"`
}

// LocalFile describes a file picked for upload.
type LocalFile struct {
	Path string
	Name string
	Size int64
	// ContentType is derived from the extension and may be empty.
	ContentType string
}

// SizeKB formats the size in kilobytes with two decimals.
func (f LocalFile) SizeKB() string {
	return FormatKB(f.Size)
}

// FormatKB renders a byte count as kilobytes with two decimals.
func FormatKB(size int64) string {
	return fmt.Sprintf("%.2f", float64(size)/1024)
}

// StatFile builds a LocalFile for path. Directories are rejected.
func StatFile(path string) (LocalFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return LocalFile{}, err
	}
	if fi.IsDir() {
		return LocalFile{}, fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(path)
	return LocalFile{
		Path:        path,
		Name:        name,
		Size:        fi.Size(),
		ContentType: contentTypeOf(name),
	}, nil
}

// contentTypeOf returns the bare media type for the file extension, without
// parameters such as charset, or "" when it is unknown.
func contentTypeOf(name string) string {
	t := mime.TypeByExtension(filepath.Ext(name))
	if t == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return ""
	}
	return mediaType
}
