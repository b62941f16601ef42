// Package httpclient provides the preconfigured HTTP client that postboard
// components share.
//
// A Client carries a base URL, a timeout and default headers, and tags
// every request with an X-Request-Id. The root component reaches it through
// the app's provide/inject mechanism rather than constructing its own.
//
//	c := httpclient.New(httpclient.DefaultConfig())
//	page, err := c.FetchPosts(ctx, 1, 10)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package httpclient
