package kernel

import "errors"

// Op names a lifecycle operation for return code conversion.
type Op string

const (
	OpFork  Op = "fork"
	OpExit  Op = "exit"
	OpWait  Op = "wait"
	OpSleep Op = "sleep"
	OpKill  Op = "kill"
	OpNice  Op = "nice"
)

// codes maps an operation to its not found and precondition return codes.
var codes = map[Op]struct{ notFound, precondition int }{
	OpFork:  {-1, -1},
	OpExit:  {-2, -1},
	OpWait:  {-3, -1},
	OpSleep: {-3, -1},
	OpKill:  {-1, -1},
}

// Code converts an operation error into the integer convention of the lab
// console: 0 on success, a negative sentinel otherwise. Wait returns -2 when
// it has to be retried. Nice errors are ignored.
func Code(op Op, err error) int {
	if err == nil || op == OpNice {
		return 0
	}
	c, ok := codes[op]
	if !ok {
		return -1
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return c.notFound
	case op == OpWait && errors.Is(err, ErrStillRunning):
		return -2
	default:
		return c.precondition
	}
}
