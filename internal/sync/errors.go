// Package sync implements the reconciliation engine that keeps the local
// note collection consistent with a remote folder-based object store: folder
// provisioning, note and attachment transfer, metadata reconciliation and
// the orchestrating state machine.
package sync

import (
	"errors"
	"fmt"
)

// ErrSyncInProgress is returned when a cycle is requested while another one
// is still running in this process.
var ErrSyncInProgress = errors.New("sync already in progress")

// Kind classifies a cycle-fatal failure.
type Kind int

const (
	// KindAuthRequired means no usable access token could be obtained.
	KindAuthRequired Kind = iota

	// KindAuthExpired means a call failed with an authorization-class error
	// mid-cycle; the cached token has been discarded.
	KindAuthExpired

	// KindProvisionFailed means remote folder lookup or creation failed.
	KindProvisionFailed

	// KindTransferFailed means a transfer phase could not run at all (e.g.
	// the remote listing failed). Individual item failures are tolerated
	// and never surface as a CycleError.
	KindTransferFailed
)

func (k Kind) String() string {
	switch k {
	case KindAuthRequired:
		return "auth required"
	case KindAuthExpired:
		return "auth expired"
	case KindProvisionFailed:
		return "provisioning failed"
	case KindTransferFailed:
		return "transfer failed"
	default:
		return "unknown"
	}
}

// CycleError is the single classified error surfaced when a sync cycle
// aborts. Partial merges applied before the failure are kept.
type CycleError struct {
	Kind Kind
	Err  error
}

func (e *CycleError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *CycleError) Unwrap() error { return e.Err }

func cycleErr(kind Kind, err error) *CycleError {
	return &CycleError{Kind: kind, Err: err}
}
