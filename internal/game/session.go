package game

// Session is one network connection's line primitives. Implementations
// must allow one goroutine to read while another writes.
type Session interface {
	// WriteString sends one logical message to the client.
	WriteString(msg string) error
	// ReadLine blocks until the client sends a line or the stream ends.
	ReadLine() (string, error)
	// Close tears the connection down.
	Close() error
}
