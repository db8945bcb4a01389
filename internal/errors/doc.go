// Package errors provides the structured error type returned by the service
// boundary of rpg-nuzlocke: repositories, orchestrators and gRPC handlers.
//
// The rule engine itself never returns errors. Declined rule checks are
// silent no-ops; only storage failures and malformed requests surface here.
//
// Creating errors:
//
//	err := errors.NotFound("run not found").WithMeta("run_id", runID)
//	err := errors.InvalidArgumentf("slot %d is out of range", slot)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to load run")
//	}
//
// Handlers convert to gRPC status with ToGRPCError.
package errors
