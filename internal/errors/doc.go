// Package errors carries coded errors through the spellchain service.
//
// Repositories return NotFound or Unavailable, the orchestrator wraps them
// with context and the gRPC handler converts them with ToGRPCError. Codes
// and metadata survive the round trip, so a client calling FromGRPCError
// sees the same code and can pull field messages back out with
// FieldMessages:
//
//	if err := vb.Build(); err != nil {
//	    return errors.Wrap(err, "invalid chain")
//	}
//
// Wrap keeps the code of the wrapped error; WrapWithCode replaces it.
package errors
