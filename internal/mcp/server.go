package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/avatar-launch/internal/showcase"
	"github.com/ziadkadry99/avatar-launch/internal/studio"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the prompt architect, image
// generation and the showcase carousel as tools.
type Server struct {
	studio  *studio.Studio
	session *showcase.Session
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. A nil studio disables image generation
// and a nil session disables the carousel tools; the tools stay listed and
// report the problem when called.
func NewServer(st *studio.Studio, session *showcase.Session) *Server {
	s := &Server{
		studio:  st,
		session: session,
	}

	s.mcp = server.NewMCPServer(
		"avatarlaunch",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(buildPromptTool, s.handleBuildPrompt)
	s.mcp.AddTool(generateImageTool, s.handleGenerateImage)
	s.mcp.AddTool(carouselStateTool, s.handleCarouselState)
	s.mcp.AddTool(carouselNavigateTool, s.handleCarouselNavigate)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
