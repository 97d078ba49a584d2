package trigger

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP registers the trigger tools on an MCP server, so agent
// tooling can fire the same orchestrator the HTTP surface does.
func (h *Handler) RegisterMCP(srv *mcp.Server) {
	h.registerCopyTool(srv)
	h.registerSnippetTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- lgtm_copy ---

func (h *Handler) registerCopyTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lgtm_copy",
		Description: "Pick a random LGTM image and copy its markup snippet to the clipboard.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	srv.AddTool(tool, func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !h.Enabled() {
			var res mcp.CallToolResult
			res.SetError(errors.New("trigger disabled on the current page"))
			return &res, nil
		}
		h.HandleTrigger(ctx)
		data, _ := json.Marshal(map[string]string{"status": "triggered"})
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// --- lgtm_snippet ---

type snippetReq struct {
	ID string `json:"id"`
}

func (h *Handler) registerSnippetTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lgtm_snippet",
		Description: "Render the LGTM markup snippet for a specific catalog identifier.",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Catalog image identifier"},
		}, []string{"id"}),
	}

	srv.AddTool(tool, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r snippetReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}
		if r.ID == "" {
			var res mcp.CallToolResult
			res.SetError(errors.New("id is required"))
			return &res, nil
		}
		data, _ := json.Marshal(map[string]string{"markup": h.format.Format(r.ID)})
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}
