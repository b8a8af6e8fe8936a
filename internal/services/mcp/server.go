// Package mcp exposes a simulation session over the Model Context
// Protocol on stdio, so assistant clients can run event cycles and
// inspect relationship state.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mgracey/rapport/internal/session"
)

const (
	serverName = "rapport"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server binds MCP tools to one in-process simulation session.
type Server struct {
	mcpServer *mcp.Server
	session   *session.Session
}

// NewServer creates the MCP server and registers every tool.
func NewServer(sess *session.Session) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	server := &Server{mcpServer: mcpServer, session: sess}
	server.registerTools()
	return server
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, AvailableEventsTool(), AvailableEventsHandler(s.session))
	mcp.AddTool(s.mcpServer, RunEventCycleTool(), RunEventCycleHandler(s.session))
	mcp.AddTool(s.mcpServer, RelationshipQueryTool(), RelationshipQueryHandler(s.session))
	mcp.AddTool(s.mcpServer, EmitTriggerTool(), EmitTriggerHandler(s.session))
	mcp.AddTool(s.mcpServer, RollCheckTool(), RollCheckHandler())
}

// Serve runs the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
