package state

import (
	"errors"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/platzi"
)

// Kind tells which path a mutation took. Every kind except ValidationFailed
// leaves identical local state; only the reported message differs.
type Kind int

const (
	// RemoteApplied means the API accepted the change.
	RemoteApplied Kind = iota
	// RemoteFailedLocalApplied means the API answered with an error status
	// and the change was applied locally only.
	RemoteFailedLocalApplied
	// NetworkExceptionLocalApplied means the API could not be reached (or its
	// reply was unreadable) and the change was applied locally only.
	NetworkExceptionLocalApplied
	// ValidationFailed means a create draft was missing required fields or
	// an update carried an unusable price. Neither the API nor local state
	// was touched.
	ValidationFailed
)

func (k Kind) String() string {
	switch k {
	case RemoteApplied:
		return "remote_applied"
	case RemoteFailedLocalApplied:
		return "remote_failed_local_applied"
	case NetworkExceptionLocalApplied:
		return "network_exception_local_applied"
	case ValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// LocalOnly reports whether the change exists only in the local collection.
func (k Kind) LocalOnly() bool {
	return k == RemoteFailedLocalApplied || k == NetworkExceptionLocalApplied
}

// Operation names reported in outcomes and metrics.
const (
	OpUpdate = "update"
	OpCreate = "create"
)

// Outcome is the result of UpdateProduct or CreateProduct.
type Outcome struct {
	Op   string
	Kind Kind
	// Product is the record as stored locally after the mutation. It is nil
	// for validation failures and for updates of unknown ids.
	Product *catalog.Product
	// Err is the remote or validation error behind a non-RemoteApplied kind.
	Err error
}

// Message returns the text shown to the user for this outcome.
func (o Outcome) Message() string {
	switch o.Op {
	case OpCreate:
		switch o.Kind {
		case RemoteApplied:
			return "Product created successfully!"
		case RemoteFailedLocalApplied:
			return "Product created locally (the API returned an error)."
		case NetworkExceptionLocalApplied:
			return "Product created locally (the API is unreachable)."
		case ValidationFailed:
			return "Please fill in all required fields!"
		}
	default:
		switch o.Kind {
		case RemoteApplied:
			return "Product updated successfully!"
		case RemoteFailedLocalApplied:
			return "Product updated locally (the API returned an error)."
		case NetworkExceptionLocalApplied:
			return "Local data updated (the API is unreachable)."
		case ValidationFailed:
			return "Please enter a valid price!"
		}
	}
	return ""
}

func classify(err error) Kind {
	if err == nil {
		return RemoteApplied
	}
	var nerr *platzi.NetworkError
	if errors.As(err, &nerr) && nerr.IsStatus() {
		return RemoteFailedLocalApplied
	}
	return NetworkExceptionLocalApplied
}
