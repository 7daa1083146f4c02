// Package testutil contains test doubles used across tests to reduce
// boilerplate when exercising pipelines: counting and failing agents, a
// record that logs every push, and move searchers for chess agents. They
// are not intended for production usage.
package testutil
