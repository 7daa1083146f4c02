// Package model defines the provider‑agnostic abstractions and concrete
// helpers for interacting with chat-completion models inside autogen.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Return every candidate message so agents decide how to pick one
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so agents remain decoupled from vendor SDKs.
package model
