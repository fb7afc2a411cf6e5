package log

// Transporter is a log output destination (stdout, file, collector).
type Transporter interface {
	Name() string
	// Write delivers one entry. Errors are reported to stderr by the buffer.
	Write(entry Entry) error
	// Close releases resources. Write is not called afterwards.
	Close() error
}
