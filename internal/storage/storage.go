package storage

import (
	"io"
)

type FileInfo struct {
	Filename    string
	ContentType string
	Size        int64
}

// Storage holds files by opaque name: artwork served to pages and uploads
// staged for ingestion.
type Storage interface {
	SaveFile(r io.Reader, info FileInfo) (string, error)
	OpenFile(path string) (io.ReadSeekCloser, error)
	DeleteFile(path string) error
}
