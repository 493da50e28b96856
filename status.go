package goscip

// #include "bridge.h"
import "C"

// Status is the terminal outcome of a solve. The solver's many limit reasons
// (stall, gap, solution count, restarts, user interrupt) are collapsed into
// StatusUserLimit: callers only need to tell "stopped for a resource reason"
// apart from the algorithmic outcomes.
type Status int

const (
	StatusUnknown Status = iota
	StatusUserLimit
	StatusNodeLimit
	StatusTimeLimit
	StatusMemLimit
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusInfeasibleOrUnbounded
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusUserLimit:
		return "UserLimit"
	case StatusNodeLimit:
		return "NodeLimit"
	case StatusTimeLimit:
		return "TimeLimit"
	case StatusMemLimit:
		return "MemLimit"
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusInfeasibleOrUnbounded:
		return "InfeasibleOrUnbounded"
	default:
		return "Unknown"
	}
}

// statusFromSCIP maps the solver's status enumeration onto Status. Anything
// unrecognized maps to StatusUnknown.
func statusFromSCIP(status C.SCIP_STATUS) Status {
	switch status {
	case C.SCIP_STATUS_UNKNOWN:
		return StatusUnknown
	case C.SCIP_STATUS_USERINTERRUPT:
		return StatusUserLimit
	case C.SCIP_STATUS_NODELIMIT:
		return StatusNodeLimit
	case C.SCIP_STATUS_TOTALNODELIMIT:
		return StatusNodeLimit
	case C.SCIP_STATUS_STALLNODELIMIT:
		return StatusUserLimit
	case C.SCIP_STATUS_TIMELIMIT:
		return StatusTimeLimit
	case C.SCIP_STATUS_MEMLIMIT:
		return StatusMemLimit
	case C.SCIP_STATUS_GAPLIMIT:
		return StatusUserLimit
	case C.SCIP_STATUS_SOLLIMIT:
		return StatusUserLimit
	case C.SCIP_STATUS_BESTSOLLIMIT:
		return StatusUserLimit
	case C.SCIP_STATUS_RESTARTLIMIT:
		return StatusUserLimit
	case C.SCIP_STATUS_OPTIMAL:
		return StatusOptimal
	case C.SCIP_STATUS_INFEASIBLE:
		return StatusInfeasible
	case C.SCIP_STATUS_UNBOUNDED:
		return StatusUnbounded
	case C.SCIP_STATUS_INFORUNBD:
		return StatusInfeasibleOrUnbounded
	default:
		return StatusUnknown
	}
}
