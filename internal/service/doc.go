// Package service implements the server-side operations behind the HTTP
// contract: listing due reviews, recording review submissions through the
// scheduling engine, and generating and scoring quiz sessions. Services
// sit between the HTTP handlers and the store interfaces.
package service
