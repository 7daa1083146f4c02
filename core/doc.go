// Package core provides the foundational contracts used by autogen. It
// defines the core abstractions for:
//
//   - Records (the caller-owned state a pipeline run mutates)
//   - Agents (units of work that attempt one state transition on a Record)
//   - Handlers (type-erased boxes letting heterogeneous agents share one pipeline)
//   - The error taxonomy shared by pipelines and their collaborators
//
// The package keeps concrete records, agents and combinators out of scope
// (see the record, assistant and agent packages), exposing small generic
// interfaces so new step implementations compose without changes here.
package core
