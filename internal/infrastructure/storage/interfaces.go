package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing with
// mocks straightforward.
type Repository interface {
	DocumentRepository
	RunRepository
	Close() error
}

// DocumentRepository tracks uploaded source documents
type DocumentRepository interface {
	// SaveDocument saves or updates the record for an uploaded file
	SaveDocument(record *DocumentRecord) error

	// GetDocument retrieves a record by stored filename.
	// Returns (nil, nil) when no record exists.
	GetDocument(filename string) (*DocumentRecord, error)

	// ListDocuments returns the most recently uploaded documents
	ListDocuments(limit int) ([]*DocumentRecord, error)
}

// RunRepository tracks reconciliation runs
type RunRepository interface {
	// SaveRun persists a completed reconciliation run
	SaveRun(record *RunRecord) error

	// GetRun retrieves a run by ID.
	// Returns (nil, nil) when no run exists.
	GetRun(id string) (*RunRecord, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]*RunRecord, error)

	// GetStats returns aggregate statistics
	GetStats() (*Stats, error)
}
