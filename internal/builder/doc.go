/*
Package builder implements the draft-to-immutable board construction
pipeline. It is the bridge between a caller's incremental description of a
project (fluent calls or a replayed config.Model) and the immutable
board.Snapshot handed back on success.

A session is started with New and owns two pieces of shared state: an
identifier sequencer and a validation ledger. Every child builder created by
the session drafts into the session's mutable draft records and records
defects into the same ledger, so one Build call surfaces every defect found
anywhere in the session.

Construction is a two-phase lifecycle:

 1. Drafting: fluent setters mutate drafts and perform local validation
    (non-empty names, length bounds, priority enumeration membership, the
    past-due policy). Recording a defect never interrupts the caller; the
    session prefers collecting more defects over early termination.

 2. Finalization: Build runs a single deterministic pass that re-checks
    structural invariants (at least one column, unique column names),
    resolves each task's column reference by id or unique name with a
    best-effort fallback to the project's first column, coerces invalid
    priorities to Normal so construction stays total, and assembles the
    immutable snapshot. If the ledger recorded anything at any point, Build
    returns the aggregate error and no snapshot.

The session state machine is Open -> Finalizing -> Built or Rejected. Both
final states are terminal: repeated Build calls return the first outcome,
and drafting calls after finalization are ignored.
*/
package builder
