// Package logging provides a minimal logging interface and adapters for autogen.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that pipelines and agents use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - A "pretty" console format backed by tint
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "pretty", false)
//	conv := agent.NewConversation[*record.ChatRecord](func(o *agent.ConversationOptions) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
