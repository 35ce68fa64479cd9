package model

// File stores an uploaded binary, either inline in the database or as a
// reference to a cloud storage object when storage is enabled.
type File struct {
	ID                int `gorm:"primaryKey"`
	Content           []byte
	Extension         string
	StorageObjectName *string
}
