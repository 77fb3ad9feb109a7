// Package fairsched provides a teaching kernel process table with a
// weighted fair scheduler.
//
// Processes are created by fork, leave through exit and are reaped by wait.
// Every RUNNABLE process receives a timeslice proportional to its weight,
// derived from its nice value, and the scheduler always dispatches the
// process with the smallest virtual runtime.
//
// The root package wires the kernel with configuration, logging, lifecycle
// events and tracing:
//
//	srv, _ := fairsched.New(fairsched.WithConfig(cfg))
//	k := srv.Kernel()
//	_, _ = k.Init(ctx)
//	pid, _ := k.Fork(ctx, 1)
//	decision, _ := k.Schedule(ctx)
//
// Scripts in the lab console format can be replayed with Service.Runner.
package fairsched
