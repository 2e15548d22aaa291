/*
Package dsl provides a fluent Go builder for pictograph graph documents.

Nodes are referred to by names chosen by the caller instead of document
positions, so a graph can be written top to bottom without index arithmetic.
The result is a *domain.Document that any engine can Load or any store can Save.

Example usage:

	b := dsl.New()

	b.Add("price", "NumberNode").Param("Number", 2.5)
	b.Add("qty", "IntegerNode").Param("Integer", 3)

	b.Add("total", "MultiplicationNode").
		Input("arg1", "price").
		Input("arg2", "qty")

	b.Add("show", "PrinterNode").Input("arg1", "total")

	doc, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	ids, err := engine.Load(doc)
*/
package dsl
