package flagstore

import "fmt"

// Kind classifies a failed flag write.
type Kind int

const (
	// PathUnopenable means the store key could not be opened; it is never created.
	PathUnopenable Kind = iota
	// WriteDenied means the key opened but the entry may not be written.
	WriteDenied
	// WriteFailed covers any other failure while writing the entry.
	WriteFailed
)

func (k Kind) String() string {
	switch k {
	case PathUnopenable:
		return "path unopenable"
	case WriteDenied:
		return "write denied"
	case WriteFailed:
		return "write failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// StoreAccessError reports a flag write that did not reach the store.
type StoreAccessError struct {
	Kind Kind
	Path string
	Name string
	Err  error
}

func (e *StoreAccessError) Error() string {
	return fmt.Sprintf("%s: %s\\%s: %v", e.Kind, e.Path, e.Name, e.Err)
}

func (e *StoreAccessError) Unwrap() error {
	return e.Err
}
