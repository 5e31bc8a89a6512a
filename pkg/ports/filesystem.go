package ports

// FileSystem abstracts the file system operations the synthesis engine
// performs around encoder output: root preparation and artifact cleanup.
type FileSystem interface {
	// EnsureDir creates a directory and all parent directories.
	EnsureDir(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Remove deletes a file. Missing files are not an error.
	Remove(path string) error

	// Size returns the size of a file in bytes.
	Size(path string) (int64, error)
}
