// Package assistant contains the concrete agents shipped with autogen:
//
//   - Chat: appends a chat-completion reply to a record.ChatRecord
//   - ChessChat: asks a chat model for the next move of a record.ChessRecord,
//     retrying with the list of rejected moves up to a bound
//   - Engine: plays the best move computed by a MoveSearcher, typically a
//     UCI engine subprocess (UCISearcher)
//
// All failures are returned as ordinary step errors; the package never
// retries on its own beyond ChessChat's documented attempt budget.
package assistant
