package mcp

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flarexio/librarian"
)

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      mcp.RequestId   `json:"id"`
	Method  mcp.MCPMethod   `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func errorResponse(id any, code int, message string) mcp.JSONRPCError {
	return mcp.JSONRPCError{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(id),
		Error: struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Data    any    `json:"data,omitempty"`
		}{
			Code:    code,
			Message: message,
		},
	}
}

type MCPEndpoint func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage

const MCPSERVER_INSTRUCTIONS string = `Librarian is an AI book-recommendation service for the library catalog, providing:

1. **Recommendations**: Natural-language book recommendations for a reader's message
2. **Semantic Search**: Rank catalog books against a free-text query
3. **Index Management**: Rebuild the embedding index after catalog changes
4. **Status**: Inspect index readiness and entry counts

Available tools:
- recommend_books: Answer a reader's message with recommended books
- search_books: Find catalog books similar to a query
- refresh_index: Clear and rebuild the embedding index
- library_status: Report index readiness and counts`

func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("recommend_books",
			mcp.WithDescription("Answer a reader's chat message with book recommendations from the catalog."),
			mcp.WithString("message",
				mcp.Required(),
				mcp.Description("The reader's message, e.g. \"recommend me a mystery novel\""),
			),
		),
		mcp.NewTool("search_books",
			mcp.WithDescription("Rank catalog books by semantic similarity to a query."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Free-text query to match against the catalog"),
			),
			mcp.WithNumber("k",
				mcp.Description("Maximum number of results (default 5)"),
			),
		),
		mcp.NewTool("refresh_index",
			mcp.WithDescription("Clear persisted embeddings and rebuild the index from the catalog."),
		),
		mcp.NewTool("library_status",
			mcp.WithDescription("Report whether the recommendation index is initialized and its entry counts."),
		),
	}
}

func InitializeEndpoint(svc librarian.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		var params mcp.InitializeParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		protocolVersion := mcp.LATEST_PROTOCOL_VERSION
		if clientVersion := params.ProtocolVersion; clientVersion != "" {
			if slices.Contains(mcp.ValidProtocolVersions, clientVersion) {
				protocolVersion = clientVersion
			}
		}

		result := &mcp.InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: mcp.ServerCapabilities{
				Tools: &struct {
					ListChanged bool `json:"listChanged,omitempty"`
				}{},
			},
			ServerInfo: mcp.Implementation{
				Name:    "librarian",
				Version: "1.0.0",
			},
			Instructions: MCPSERVER_INSTRUCTIONS,
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func PingEndpoint(svc librarian.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  struct{}{}, // empty response
		}
	}
}

func ListToolsEndpoint(svc librarian.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		result := &mcp.ListToolsResult{
			Tools: Tools(),
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func CallToolEndpoint(svc librarian.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		var params mcp.CallToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		callToolReq := mcp.CallToolRequest{
			Request: mcp.Request{
				Method: string(req.Method),
			},
			Params: params,
		}

		result, err := callTool(ctx, svc, callToolReq)
		if err != nil {
			return errorResponse(req.ID, mcp.INTERNAL_ERROR, err.Error())
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func callTool(ctx context.Context, svc librarian.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch req.Params.Name {
	case "recommend_books":
		message, err := req.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		rec, err := svc.Recommend(ctx, message)
		if err != nil {
			return nil, err
		}

		return jsonToolResult(rec)

	case "search_books":
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		k := req.GetInt("k", 5)

		matches, err := svc.SearchBooks(ctx, query, k)
		if err != nil {
			return nil, err
		}

		return jsonToolResult(matches)

	case "refresh_index":
		if err := svc.RefreshIndex(ctx); err != nil {
			return nil, err
		}

		return mcp.NewToolResultText("index refreshed"), nil

	case "library_status":
		status, err := svc.Status(ctx)
		if err != nil {
			return nil, err
		}

		return jsonToolResult(status)

	default:
		return mcp.NewToolResultError("unknown tool: " + req.Params.Name), nil
	}
}

func jsonToolResult(v any) (*mcp.CallToolResult, error) {
	bs, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(bs)), nil
}
