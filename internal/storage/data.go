package storage

// Persistence

type WriteResult struct {
	sourceHash  string // identity (filename without extension)
	path        string
	contentHash string
}

func NewWriteResult(
	sourceHash string,
	path string,
	contentHash string,
) WriteResult {
	return WriteResult{
		sourceHash:  sourceHash,
		path:        path,
		contentHash: contentHash,
	}
}

func (w *WriteResult) SourceHash() string {
	return w.sourceHash
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}
