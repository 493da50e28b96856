package goscip

// #include "bridge.h"
import "C"

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMemory is returned when the solver runs out of memory.
	ErrNoMemory = errors.New("goscip: solver out of memory")

	// ErrEngine is returned for every other solver failure. The individual
	// solver return codes are deliberately collapsed; callers only need to
	// distinguish out-of-memory from everything else.
	ErrEngine = errors.New("goscip: solver error")

	// ErrNoSolution is returned by solution queries when no solution is
	// available, e.g. before the first solve or after an infeasible one.
	ErrNoSolution = errors.New("goscip: no solution available")
)

// scipError translates a solver return code into an error.
func scipError(retcode C.SCIP_RETCODE) error {
	switch retcode {
	case C.SCIP_OKAY:
		return nil
	case C.SCIP_NOMEMORY:
		return ErrNoMemory
	default: // all the same for us
		return fmt.Errorf("%w (retcode %d)", ErrEngine, int(retcode))
	}
}

// scipRetcode translates an error back into a solver return code, for
// callback trampolines that must report failures to the solver.
func scipRetcode(err error) C.SCIP_RETCODE {
	switch {
	case err == nil:
		return C.SCIP_OKAY
	case errors.Is(err, ErrNoMemory):
		return C.SCIP_NOMEMORY
	default:
		return C.SCIP_ERROR
	}
}
