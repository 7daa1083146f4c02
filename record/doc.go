// Package record provides the concrete core.Record implementations shipped
// with autogen: a chat transcript (ChatRecord) and a chess game
// (ChessRecord) that rejects unparsable or illegal moves without mutating
// its history.
package record
