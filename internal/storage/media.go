package storage

// MediaStore owns the managed file area that article image paths point
// into. Repositories only ever ask it to remove a path or to pull an
// unmanaged file in.
type MediaStore interface {
	// DeleteIfExists removes the file at path. Blank and already-absent
	// paths are no-ops.
	DeleteIfExists(path string) error
	// CopyIntoManagedStorage copies the file at sourcePath into the
	// managed area and returns the managed path.
	CopyIntoManagedStorage(sourcePath string) (string, error)
}
