/*
Package pictograph is a dataflow engine for visual node-based programming.

A program is a directed acyclic graph of nodes. Each node computes a value from
its named inputs and adjustable parameters, caches it, and tells its consumers
when that cache becomes valid or stale. Edits (connecting a terminal, adjusting
a parameter, disconnecting a producer) re-evaluate exactly the downstream part
of the graph that depends on them.

# Concept

Nodes are instances of registered variants: constants, arithmetic, string
formatting, vector generators and sinks such as the printer. The engine owns
every node in an arena and exposes them through NodeIDs, so the graph can be
edited from any adapter (CLI, HTTP server, MCP tools) and persisted as a
document.

# Key Features

  - Incremental evaluation: only consumers of an edited node recompute.
  - Validity tracking: every node reports whether its output is current.
  - Extensible variants: register custom compute capabilities by name.
  - Documents: save and restore graphs as JSON or YAML.

# Usage

	eng := pictograph.New(pictograph.WithAutoProcess(true))

	a, _ := eng.AddNode("NumberNode")
	b, _ := eng.AddNode("NumberNode")
	sum, _ := eng.AddNode("AdditionNode")

	_ = eng.AdjustParameter(a, "Number", 2.5)
	_ = eng.AdjustParameter(b, "Number", 5.5)
	_ = eng.ConnectInput(sum, "arg1", a)
	_ = eng.ConnectInput(sum, "arg2", b)

	v, _ := eng.Output(sum) // 8.0
*/
package pictograph
