/*
Package domain contains the core domain models of the pictograph dataflow engine.

It defines the vocabulary shared by the evaluation runtime, the node variants and
the external collaborators (document codecs, stores, adapters). The package is kept
pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Parameter: a named, kinded, user-adjustable value owned by a node.
  - NodeID: the stable arena identifier links are expressed in.
  - NodeDescriptor: the data an external loader needs to rebuild a node.
  - Document: a whole graph in serializable form (nodes plus connections).
  - Message: the BecameValid/BecameInvalid notifications exchanged between nodes.
*/
package domain
