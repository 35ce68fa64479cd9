package file

import "io"

// StorageClient abstracts the object store file contents are persisted to.
// A nil client makes the controller fall back to storing bytes in the
// database row itself.
type StorageClient interface {
	UploadFile(objectName string, fileData io.Reader) error
	DownloadFile(objectName string) (io.ReadCloser, int64, error)
}
