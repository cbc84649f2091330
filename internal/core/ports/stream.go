package ports

//go:generate go run go.uber.org/mock/mockgen -source=stream.go -destination=mocks/mock_stream.go -package=mocks

// RecordStream is an append-only newline-delimited record sink.
type RecordStream interface {
	// Append encodes v as one line and writes it with a single write.
	Append(v any) error
	// Offset returns the byte size of all complete records written so far.
	Offset() int64
	// Truncate drops everything after offset.
	Truncate(offset int64) error
	// Close flushes and closes the stream.
	Close() error
}

// DocumentWriter replaces a single JSON document atomically.
type DocumentWriter interface {
	Put(v any) error
}

// OutputFactory opens the on-disk artifacts of a run.
type OutputFactory interface {
	// OpenStream creates the stream at path. With resume set an existing file is
	// kept and appended to.
	OpenStream(path string, resume bool) (RecordStream, error)
	// NewDocument returns a writer replacing the document at path.
	NewDocument(path string) DocumentWriter
}
