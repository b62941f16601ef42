// Package web contains the root component of postboard: the JSON API over
// the posts store and the upstream posts listing.
package web
