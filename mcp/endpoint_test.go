package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/flarexio/librarian"
)

func TestUnmarshalInitializeRequest(t *testing.T) {
	assert := assert.New(t)

	input := []byte(`{
	  "jsonrpc": "2.0",
	  "id": 1,
	  "method": "initialize",
	  "params": {
	    "protocolVersion": "2024-11-05",
	    "clientInfo": {
	      "name": "ExampleClient",
	      "version": "1.0.0"
	    }
	  }
	}`)

	var req JSONRPCRequest
	if err := json.Unmarshal(input, &req); err != nil {
		assert.Fail(err.Error())
		return
	}

	var params mcp.InitializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(mcp.JSONRPC_VERSION, req.JSONRPC)
	assert.Equal(mcp.NewRequestId(int64(1)), req.ID)
	assert.Equal(mcp.MethodInitialize, req.Method)
	assert.Equal("2024-11-05", params.ProtocolVersion)
}

type stubService struct {
	librarian.Service
	rec *librarian.Recommendation
}

func (s *stubService) Recommend(ctx context.Context, message string) (*librarian.Recommendation, error) {
	return s.rec, nil
}

func TestCallRecommendBooksTool(t *testing.T) {
	assert := assert.New(t)

	svc := &stubService{
		rec: &librarian.Recommendation{
			Response:      "Try Gone Dark.",
			IsBookRequest: true,
			Books: []librarian.BookRecord{
				{ID: 1, Title: "Gone Dark"},
			},
		},
	}

	input := []byte(`{
	  "jsonrpc": "2.0",
	  "id": 2,
	  "method": "tools/call",
	  "params": {
	    "name": "recommend_books",
	    "arguments": {
	      "message": "recommend me a mystery novel"
	    }
	  }
	}`)

	var req JSONRPCRequest
	if err := json.Unmarshal(input, &req); err != nil {
		assert.Fail(err.Error())
		return
	}

	resp := CallToolEndpoint(svc)(context.Background(), req)

	result, ok := resp.(mcp.JSONRPCResponse)
	if !ok {
		assert.Fail("invalid response type")
		return
	}

	toolResult, ok := result.Result.(*mcp.CallToolResult)
	if !ok {
		assert.Fail("invalid result type")
		return
	}

	if !assert.Len(toolResult.Content, 1) {
		return
	}

	content, ok := toolResult.Content[0].(mcp.TextContent)
	if !ok {
		assert.Fail("invalid content type")
		return
	}

	var rec librarian.Recommendation
	if err := json.Unmarshal([]byte(content.Text), &rec); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("Try Gone Dark.", rec.Response)
	assert.True(rec.IsBookRequest)
	assert.Len(rec.Books, 1)
}

func TestListToolsEndpoint(t *testing.T) {
	assert := assert.New(t)

	input := []byte(`{"jsonrpc": "2.0", "id": 3, "method": "tools/list"}`)

	var req JSONRPCRequest
	if err := json.Unmarshal(input, &req); err != nil {
		assert.Fail(err.Error())
		return
	}

	resp := ListToolsEndpoint(nil)(context.Background(), req)

	result, ok := resp.(mcp.JSONRPCResponse)
	if !ok {
		assert.Fail("invalid response type")
		return
	}

	listResult, ok := result.Result.(*mcp.ListToolsResult)
	if !ok {
		assert.Fail("invalid result type")
		return
	}

	names := make([]string, len(listResult.Tools))
	for i, tool := range listResult.Tools {
		names[i] = tool.Name
	}

	assert.Equal([]string{
		"recommend_books", "search_books", "refresh_index", "library_status",
	}, names)
}
