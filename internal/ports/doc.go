// Package ports defines the interfaces that connect postboard's application
// code to infrastructure adapters.
//
// # Port Interfaces
//
//   - [KeyValueStore]: persisted slots behind the stores
//   - [PostsSource]: upstream listing of posts
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The root component (internal/web) depends only on these interfaces.
// Adapters (internal/adapters, pkg/httpclient) implement them.
package ports
