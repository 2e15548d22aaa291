// Package document converts graphs to and from serializable documents.
//
// A document lists nodes by registered variant name with their parameter
// values, plus connections between node positions. Restoring applies every
// parameter before any connection, so nodes compute against their saved
// configuration as soon as their inputs become ready.
package document
