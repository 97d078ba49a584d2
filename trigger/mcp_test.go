package trigger

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kkhys/lgtmd/catalog"
	"github.com/kkhys/lgtmd/gate"
	"github.com/kkhys/lgtmd/pick"
	"github.com/kkhys/lgtmd/snippet"
)

var testMCPImpl = &mcp.Implementation{Name: "lgtmd-test", Version: "0.1.0"}

func mcpSession(t *testing.T, h *Handler) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	h.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestMCP_Copy(t *testing.T) {
	cat := catalogServer(t, `{"ids":["id1","id2","id3"]}`, 200)
	sink := &fakeSink{}
	format := snippet.Formatter{Origin: "https://lgtm.kkhys.me", Ext: ".avif"}
	h := New(
		catalog.New(cat.URL, "/api/ids.json"),
		pick.New(pick.WithSource(fixedDraw(0.5))),
		format,
		sink,
		testLogger(),
	)
	session := mcpSession(t, h)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "lgtm_copy",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %v", result.Content)
	}

	got, n := sink.last()
	if n != 1 || got != format.Format("id2") {
		t.Errorf("sink state: n=%d text=%q", n, got)
	}
}

func TestMCP_CopyGatedOff(t *testing.T) {
	g := gate.New()
	g.HandleInstalled(".github.com")
	sink := &fakeSink{}
	h := New(nil, pick.New(), snippet.Formatter{}, sink, testLogger(), WithGate(g))
	session := mcpSession(t, h)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "lgtm_copy",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error while gated off")
	}
	if _, n := sink.last(); n != 0 {
		t.Error("chain ran while gated off")
	}
}

func TestMCP_Snippet(t *testing.T) {
	h := New(nil, pick.New(),
		snippet.Formatter{Origin: "https://lgtm.kkhys.me", Ext: ".avif"},
		&fakeSink{}, testLogger())
	session := mcpSession(t, h)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "lgtm_snippet",
		Arguments: map[string]any{"id": "test-id-123"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %v", result.Content)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatal("expected TextContent")
	}

	var resp struct {
		Markup string `json:"markup"`
	}
	if err := json.Unmarshal([]byte(tc.Text), &resp); err != nil {
		t.Fatal(err)
	}
	want := `<a href="https://lgtm.kkhys.me/test-id-123"><img src="https://lgtm.kkhys.me/test-id-123.avif" alt="LGTM!!" width="400" /></a>`
	if resp.Markup != want {
		t.Errorf("markup\n got: %s\nwant: %s", resp.Markup, want)
	}
}

func TestMCP_SnippetMissingID(t *testing.T) {
	h := New(nil, pick.New(), snippet.Formatter{}, &fakeSink{}, testLogger())
	session := mcpSession(t, h)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "lgtm_snippet",
		Arguments: map[string]any{},
	})
	// Depending on where schema validation trips, the failure surfaces as a
	// protocol error or a tool error; either is a rejection.
	if err == nil && !result.IsError {
		t.Fatal("expected an error for missing id")
	}
}
