// Package client contains the CLI's connection to the TaskJournal backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     account and task operations.
//  2. A gRPC implementation (see GRPCClient) that injects the access token
//     via an interceptor, transparently refreshes it once when the server
//     answers Unauthenticated, and maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite file where the CLI keeps its session between runs.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrRejected, ErrNotFound. The
// wrapped text carries the server's message.
package client
