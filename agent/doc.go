// Package agent contains the pipeline and control-flow combinators used to
// compose heterogeneous core.Agent values against one record. The package
// focuses on three concerns:
//
//  1. Ordered, fail-fast execution (Conversation)
//  2. Error-triggered substitution of a fallback step (Catch, CatchRef)
//  3. Predicate-gated repetition of a nested pipeline (While, WhileBuilder)
//
// Every combinator is itself a core.Agent, so they nest arbitrarily:
//
//	conv := agent.NewConversation[*record.ChessRecord]()
//	conv.While(notFinished).
//		Agent(engine).
//		Agent(agent.Catch(chat, agent.RecoverIs(assistant.ErrNoLegalMove, engine))).
//		End()
//	err := conv.PlayWith(ctx, rec)
//
// Execution Model:
//   - Steps run strictly one at a time, in append order
//   - The record is owned by the caller and handed to each step in turn
//   - No step output is rolled back when a later step fails
package agent
