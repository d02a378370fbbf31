// Package domain defines the core business entities and errors for the
// vocabulary learning system: words and their spaced-repetition learning
// state, review items, quiz sessions, and session results.
package domain
