package pictograph_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/pkg/adapters/memory"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/registry"
	"github.com/aretw0/pictograph/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAdd(t *testing.T, eng *pictograph.Engine, name string) domain.NodeID {
	t.Helper()
	id, err := eng.AddNode(name)
	require.NoError(t, err)
	return id
}

func TestFacade_ScenarioA_Propagation(t *testing.T) {
	eng := pictograph.New()

	a := mustAdd(t, eng, "NumberNode")
	b := mustAdd(t, eng, "NumberNode")
	sum := mustAdd(t, eng, "AdditionNode")
	require.NoError(t, eng.AdjustParameter(a, "Number", 2.5))
	require.NoError(t, eng.AdjustParameter(b, "Number", 5.5))

	require.NoError(t, eng.ConnectInput(sum, "arg1", a))
	require.NoError(t, eng.ConnectInput(sum, "arg2", b))
	assert.False(t, eng.IsOutputValid(sum), "auto-process is off by default")

	require.NoError(t, eng.Process(sum))
	v, ok := eng.Output(sum)
	require.True(t, ok)
	assert.Equal(t, 8.0, v)

	require.NoError(t, eng.AdjustParameter(a, "Number", 1.0))
	v, ok = eng.Output(sum)
	require.True(t, ok)
	assert.Equal(t, 6.5, v)
}

func TestFacade_AutoProcessAndPrinter(t *testing.T) {
	var out bytes.Buffer
	eng := pictograph.New(pictograph.WithAutoProcess(true), pictograph.WithPrinterOutput(&out))

	s := mustAdd(t, eng, "StringNode")
	p := mustAdd(t, eng, "PrinterNode")
	require.NoError(t, eng.AdjustParameter(s, "String", "hello"))

	require.NoError(t, eng.ConnectInput(p, "arg1", s))
	assert.True(t, eng.IsOutputValid(p))
	assert.Equal(t, "Node value changed to \"hello\"\n", out.String())

	out.Reset()
	require.NoError(t, eng.DisconnectInput(p, "arg1"))
	assert.False(t, eng.IsOutputValid(p))
	assert.True(t, eng.IsOutputValid(s))
	assert.Equal(t, "Node output became invalid\n", out.String())

	// Printers refuse to act as producers.
	other := mustAdd(t, eng, "PrinterNode")
	err := eng.ConnectInput(other, "arg1", p)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestFacade_Errors(t *testing.T) {
	eng := pictograph.New()

	_, err := eng.AddNode("Node")
	assert.ErrorIs(t, err, domain.ErrAbstractVariant)

	_, err = eng.AddNode("MissingNode")
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)

	_, err = eng.AddVariant(nil)
	assert.ErrorIs(t, err, domain.ErrAbstractVariant)

	n := mustAdd(t, eng, "NumberNode")
	sum := mustAdd(t, eng, "AdditionNode")
	assert.ErrorIs(t, eng.ConnectInput(sum, "arg3", n), domain.ErrInvalidTerminal)
	assert.ErrorIs(t, eng.AdjustParameter(n, "Nope", 1), domain.ErrUnknownParameter)
	assert.ErrorIs(t, eng.Process(domain.NodeID(99)), domain.ErrNodeNotFound)

	require.NoError(t, eng.ConnectInput(sum, "arg1", n))
	assert.ErrorIs(t, eng.ConnectInput(sum, "arg1", n), domain.ErrTerminalOccupied)
	assert.ErrorIs(t, eng.RemoveNode(n), domain.ErrNodeInUse)
}

func TestFacade_CustomRegistry(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(func() variant.Variant { return variant.NewNumber(7) }))

	eng := pictograph.New(pictograph.WithRegistry(reg))
	id := mustAdd(t, eng, "NumberNode")
	v, ok := eng.Output(id)
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, err := eng.AddNode("AdditionNode")
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
	assert.Len(t, eng.Catalog(), 1)
}

func TestFacade_Hooks(t *testing.T) {
	var events []string
	hooks := domain.LifecycleHooks{
		OnProcess:    func(e *domain.NodeEvent) { events = append(events, "process:"+e.NodeType) },
		OnInvalidate: func(e *domain.NodeEvent) { events = append(events, "invalidate:"+e.NodeType) },
		OnConnect:    func(e *domain.LinkEvent) { events = append(events, "connect:"+e.Key) },
		OnDisconnect: func(e *domain.LinkEvent) { events = append(events, "disconnect:"+e.Key) },
	}
	eng := pictograph.New(pictograph.WithLifecycleHooks(hooks), pictograph.WithAutoProcess(true))

	n := mustAdd(t, eng, "IntegerNode")
	z := mustAdd(t, eng, "ZerosNode")
	sum := mustAdd(t, eng, "AdditionNode")
	require.NoError(t, eng.AdjustParameter(z, "Length", 2))
	events = nil

	require.NoError(t, eng.ConnectInput(sum, "arg1", n))
	require.NoError(t, eng.ConnectInput(sum, "arg2", z))
	require.NoError(t, eng.DisconnectInput(sum, "arg1"))

	assert.Equal(t, []string{
		"connect:arg1",
		"connect:arg2",
		"process:AdditionNode",
		"disconnect:arg1",
		"invalidate:AdditionNode",
	}, events)
}

func TestFacade_SnapshotLoad(t *testing.T) {
	var out bytes.Buffer
	eng := pictograph.New(pictograph.WithPrinterOutput(&out))

	a := mustAdd(t, eng, "IntegerNode")
	b := mustAdd(t, eng, "IntegerNode")
	mul := mustAdd(t, eng, "MultiplicationNode")
	p := mustAdd(t, eng, "PrinterNode")
	require.NoError(t, eng.AdjustParameter(a, "Integer", 6))
	require.NoError(t, eng.AdjustParameter(b, "Integer", 7))
	require.NoError(t, eng.ConnectInput(mul, "arg1", a))
	require.NoError(t, eng.ConnectInput(mul, "arg2", b))
	require.NoError(t, eng.ConnectInput(p, "arg1", mul))

	doc := eng.Snapshot()

	other := pictograph.New(pictograph.WithPrinterOutput(&out))
	ids, err := other.Load(doc)
	require.NoError(t, err)
	require.Len(t, ids, 4)

	v, ok := other.Output(ids[2])
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.True(t, other.IsOutputValid(ids[3]))
	assert.Contains(t, out.String(), `Node value changed to "42"`)
	assert.Equal(t, doc, other.Snapshot())
}

func TestFacade_LoadFailureKeepsGraph(t *testing.T) {
	eng := pictograph.New()
	n := mustAdd(t, eng, "NumberNode")

	doc := domain.NewDocument()
	doc.Nodes = append(doc.Nodes, domain.NodeDescriptor{Type: "MissingNode"})

	_, err := eng.Load(doc)
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
	assert.Equal(t, 1, eng.Len())
	assert.True(t, eng.IsOutputValid(n))
}

func TestFacade_LoadComputeError(t *testing.T) {
	eng := pictograph.New()

	doc := domain.NewDocument()
	doc.Nodes = append(doc.Nodes,
		domain.NodeDescriptor{Type: "NumberNode", Parameters: map[string]any{"Number": 1.0}},
		domain.NodeDescriptor{Type: "StringFormatNode"},
	)
	// A number is not a valid format string.
	doc.Connections = append(doc.Connections,
		domain.Connection{From: 0, To: 1, Key: "arg1"},
		domain.Connection{From: 0, To: 1, Key: "arg2"},
	)

	ids, err := eng.Load(doc)
	assert.ErrorIs(t, err, domain.ErrCompute)
	require.Len(t, ids, 2)
	assert.Equal(t, 2, eng.Len())
	assert.False(t, eng.IsOutputValid(ids[1]))
}

func TestFacade_SaveOpen(t *testing.T) {
	ctx := context.Background()

	_, err := pictograph.New().Open(ctx, "g")
	assert.ErrorIs(t, err, pictograph.ErrNoStore)

	store := memory.NewStore()
	eng := pictograph.New(pictograph.WithStore(store))
	v := mustAdd(t, eng, "VectorNode")
	require.NoError(t, eng.AdjustParameter(v, "Vector", []float64{1, 2, 3}))
	require.NoError(t, eng.Save(ctx, "g"))

	eng.Reset()
	assert.Equal(t, 0, eng.Len())

	ids, err := eng.Open(ctx, "g")
	require.NoError(t, err)
	out, ok := eng.Output(ids[0])
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, out)

	_, err = eng.Open(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestFacade_ConcurrentEdits(t *testing.T) {
	eng := pictograph.New(pictograph.WithAutoProcess(true))
	src := mustAdd(t, eng, "NumberNode")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sum, err := eng.AddNode("AdditionNode")
			if err == nil {
				err = eng.ConnectInput(sum, "arg1", src)
			}
			if err == nil {
				err = eng.ConnectInput(sum, "arg2", src)
			}
			if err == nil {
				err = eng.AdjustParameter(src, "Number", float64(i))
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	final, _ := eng.Output(src)
	for _, n := range eng.Nodes() {
		if n.Type == "AdditionNode" {
			assert.True(t, n.Valid)
			assert.Equal(t, final.(float64)*2, n.Output)
		}
	}
}

func TestRunner(t *testing.T) {
	eng := pictograph.New(pictograph.WithName("demo"), pictograph.WithPrinterOutput(&bytes.Buffer{}))
	a := mustAdd(t, eng, "NumberNode")
	sum := mustAdd(t, eng, "AdditionNode")
	p := mustAdd(t, eng, "PrinterNode")
	require.NoError(t, eng.AdjustParameter(a, "Number", 2.0))
	require.NoError(t, eng.ConnectInput(sum, "arg1", a))
	require.NoError(t, eng.ConnectInput(sum, "arg2", a))
	require.NoError(t, eng.ConnectInput(p, "arg1", sum))

	t.Run("headless", func(t *testing.T) {
		var out bytes.Buffer
		r := pictograph.NewRunner(&out)
		r.Headless = true
		require.NoError(t, r.Run(eng))
		assert.Equal(t, "n1 NumberNode = 2\nn2 AdditionNode = 4\nn3 PrinterNode (sink, valid)\n", out.String())
	})

	t.Run("markdown", func(t *testing.T) {
		var out bytes.Buffer
		r := pictograph.NewRunner(&out)
		r.Renderer = func(s string) (string, error) { return strings.ToUpper(s), nil }
		require.NoError(t, r.Run(eng))
		assert.Contains(t, out.String(), "# DEMO")
		assert.Contains(t, out.String(), "| N2 | ADD | VALID | `4` |")
	})

	t.Run("renderer failure falls back", func(t *testing.T) {
		var out bytes.Buffer
		r := pictograph.NewRunner(&out)
		r.Renderer = func(string) (string, error) { return "", errors.New("boom") }
		require.NoError(t, r.Run(eng))
		assert.Contains(t, out.String(), "| n1 | Number | valid | `2` |")
	})

	t.Run("missing output", func(t *testing.T) {
		assert.Error(t, (&pictograph.Runner{}).Run(eng))
	})
}

func TestRunner_EvaluatedSkipsRefresh(t *testing.T) {
	var printed bytes.Buffer
	eng := pictograph.New(pictograph.WithPrinterOutput(&printed))
	_, err := eng.Load(&domain.Document{
		Version: domain.DocumentVersion,
		Nodes: []domain.NodeDescriptor{
			{Type: "NumberNode", Parameters: map[string]any{"Number": 1.0}},
			{Type: "PrinterNode"},
		},
		Connections: []domain.Connection{{From: 0, To: 1, Key: "arg1"}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(printed.String(), "Node value changed"))

	r := pictograph.NewRunner(io.Discard)
	r.Evaluated = true
	require.NoError(t, r.Run(eng))
	assert.Equal(t, 1, strings.Count(printed.String(), "Node value changed"))

	r.Evaluated = false
	require.NoError(t, r.Run(eng))
	assert.Equal(t, 2, strings.Count(printed.String(), "Node value changed"))
}
