package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flarexio/librarian"

	mcpE "github.com/flarexio/librarian/mcp"
)

func AddRouters(r *gin.Engine, endpoints librarian.EndpointSet) {
	// RESTful API routes
	api := r.Group("/api")
	{
		api.POST("/chat/recommend", RecommendHandler(endpoints.Recommend))
		api.POST("/chat/refresh", RefreshIndexHandler(endpoints.RefreshIndex))
		api.GET("/chat/status", StatusHandler(endpoints.Status))
		api.GET("/books/search", SearchBooksHandler(endpoints.SearchBooks))
		api.GET("/books/:id", GetBookHandler(endpoints.GetBook))
	}
}

func AddStreamableRouters(r *gin.Engine, endpoints map[mcp.MCPMethod]mcpE.MCPEndpoint) {
	mcp := r.Group("/mcp")
	{
		mcp.POST("/", MCPStreamableHandler(endpoints))
	}
}
