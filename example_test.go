package pictograph_test

import (
	"fmt"
	"log"
	"os"

	"github.com/aretw0/pictograph"
)

// ExampleEngine builds Number + Number and shows the sum following its inputs.
func ExampleEngine() {
	eng := pictograph.New(pictograph.WithAutoProcess(true))

	a, err := eng.AddNode("NumberNode")
	if err != nil {
		log.Fatal(err)
	}
	b, _ := eng.AddNode("NumberNode")
	sum, _ := eng.AddNode("AdditionNode")

	_ = eng.AdjustParameter(a, "Number", 2.5)
	_ = eng.AdjustParameter(b, "Number", 5.5)
	_ = eng.ConnectInput(sum, "arg1", a)
	_ = eng.ConnectInput(sum, "arg2", b)

	v, _ := eng.Output(sum)
	fmt.Println(v)

	// Adjusting a producer re-evaluates its consumers.
	_ = eng.AdjustParameter(a, "Number", 1.0)
	v, _ = eng.Output(sum)
	fmt.Println(v)

	_ = eng.DisconnectInput(sum, "arg2")
	fmt.Println(eng.IsOutputValid(sum))
	// Output:
	// 8
	// 6.5
	// false
}

// ExampleEngine_printer formats a value and sends it to a printer sink.
func ExampleEngine_printer() {
	eng := pictograph.New(pictograph.WithAutoProcess(true), pictograph.WithPrinterOutput(os.Stdout))

	format, _ := eng.AddNode("StringNode")
	value, _ := eng.AddNode("IntegerNode")
	str, _ := eng.AddNode("StringFormatNode")
	printer, _ := eng.AddNode("PrinterNode")

	_ = eng.AdjustParameter(format, "String", "Answer: {}")
	_ = eng.AdjustParameter(value, "Integer", 42)
	_ = eng.ConnectInput(str, "arg1", format)
	_ = eng.ConnectInput(str, "arg2", value)
	_ = eng.ConnectInput(printer, "arg1", str)

	_ = eng.DisconnectInput(printer, "arg1")
	// Output:
	// Node value changed to "Answer: 42"
	// Node output became invalid
}
