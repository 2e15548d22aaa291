/*
Package ports defines the driven ports (interfaces) for the pictograph engine.

These interfaces decouple graph editing from external implementations, allowing
documents to be persisted in various backends and adapters (HTTP, MCP, CLI) to
drive any engine implementation.

# Key Interfaces

  - GraphReader / GraphBuilder: what document encoding and restoring need from an engine.
  - Editor: the full editing surface exposed to adapters.
  - DocumentStore: persists named graph documents.
  - DistributedLocker: serializes writers of the same document across replicas.
*/
package ports
