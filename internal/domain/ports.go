package domain

// SourceFile is one (path, content) pair produced by a FileSource. Path
// is slash-separated and relative to the scanned root.
type SourceFile struct {
	Path    string
	Content string
}

// Filters restricts which files a FileSource yields.
type Filters struct {
	// Include lists path globs; empty means every file.
	Include []string
	// Exclude lists directory names or path globs to skip.
	Exclude []string
}

// FileSource lazily yields the files under a root path. Implementations
// must stop walking when yield returns false and release any resources
// before List returns, so the engine can terminate early on a file-count
// budget without leaks.
type FileSource interface {
	List(root string, filters Filters, yield func(SourceFile) bool) error
}

// ReportWriter persists a report's serialized form to a named location.
type ReportWriter interface {
	Write(path string, report *Report) error
}

// RunHistory records completed runs for later inspection.
type RunHistory interface {
	SaveRun(entry RunEntry) error
	ListRuns(limit int) ([]RunEntry, error)
	Close() error
}

// GitInfo resolves version-control metadata for a scanned tree.
type GitInfo interface {
	IsGitRepo(root string) bool
	CommitHash(root string) (string, error)
}
