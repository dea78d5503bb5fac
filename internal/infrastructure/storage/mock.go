package storage

import (
	"sort"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps, making tests fast and isolated.
type MockRepository struct {
	documents map[string]*DocumentRecord
	runs      map[string]*RunRecord
	nextDocID int64

	// Hooks for test assertions
	SaveDocumentCalled bool
	SaveRunCalled      bool
	LastSavedRun       *RunRecord

	// Error injection for testing error paths
	SaveDocumentErr error
	SaveRunErr      error
	GetRunErr       error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		documents: make(map[string]*DocumentRecord),
		runs:      make(map[string]*RunRecord),
		nextDocID: 1,
	}
}

// SaveDocument saves the record in memory
func (m *MockRepository) SaveDocument(record *DocumentRecord) error {
	m.SaveDocumentCalled = true
	if m.SaveDocumentErr != nil {
		return m.SaveDocumentErr
	}
	if record.ID == 0 {
		record.ID = m.nextDocID
		m.nextDocID++
	}
	m.documents[record.Filename] = record
	return nil
}

// GetDocument retrieves a record by filename
func (m *MockRepository) GetDocument(filename string) (*DocumentRecord, error) {
	record, ok := m.documents[filename]
	if !ok {
		return nil, nil
	}
	return record, nil
}

// ListDocuments returns stored documents, newest first
func (m *MockRepository) ListDocuments(limit int) ([]*DocumentRecord, error) {
	records := make([]*DocumentRecord, 0, len(m.documents))
	for _, record := range m.documents {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.After(records[j].UploadedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// SaveRun saves the run in memory
func (m *MockRepository) SaveRun(record *RunRecord) error {
	m.SaveRunCalled = true
	m.LastSavedRun = record
	if m.SaveRunErr != nil {
		return m.SaveRunErr
	}
	m.runs[record.ID] = record
	return nil
}

// GetRun retrieves a run by ID
func (m *MockRepository) GetRun(id string) (*RunRecord, error) {
	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	record, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	return record, nil
}

// ListRuns returns stored runs, newest first
func (m *MockRepository) ListRuns(limit int) ([]*RunRecord, error) {
	records := make([]*RunRecord, 0, len(m.runs))
	for _, record := range m.runs {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// GetStats computes statistics over the in-memory runs
func (m *MockRepository) GetStats() (*Stats, error) {
	stats := &Stats{
		TotalRuns:    len(m.runs),
		TotalUploads: len(m.documents),
	}
	for _, run := range m.runs {
		if run.Pass {
			stats.PassedRuns++
		} else {
			stats.FailedRuns++
		}
		stats.MajorTotal += run.MajorCount
		stats.MinorTotal += run.MinorCount
	}
	return stats, nil
}

// Close is a no-op for the mock
func (m *MockRepository) Close() error {
	return nil
}
