// Package store defines interfaces for data persistence operations on
// the server side. These interfaces abstract the underlying storage
// mechanism from the handlers, allowing the reference in-memory backend
// to be swapped for a durable one without touching business rules.
package store
