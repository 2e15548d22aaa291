/*
Package library guards access to named graph documents.

A Manager wraps a ports.DocumentStore so that saves, loads and deletes of the
same document are serialized within the process and, when a
ports.DistributedLocker is configured, across replicas sharing the store.
*/
package library
