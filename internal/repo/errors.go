package repo

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrNotModified = errors.New("record not modified")
	ErrDuplicate   = errors.New("record already exists")
)

// ImportError reports a bulk insert that stopped part way.
type ImportError struct {
	Inserted int
	Err      error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import stopped after %d inserted: %v", e.Inserted, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }
