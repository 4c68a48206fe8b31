package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"
)

// Version is reported to clients during initialize.
const Version = "0.1.0"

// Services contains all domain services needed by MCP.
type Services struct {
	Habits   HabitService
	Spaces   SpaceService
	Lists    ListService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	DefaultUser   string
	Locale        language.Tag
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "habits-mcp",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	defaultUser := cfg.DefaultUser
	if defaultUser == "" {
		defaultUser = "default"
	}
	// Stdio is a local single-user transport and never authenticates.
	identify := noAuthMiddleware(defaultUser)
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		identify = authMiddleware(cfg.Resolver)
	}
	// The first middleware runs first, so inbound logs carry the user.
	server.AddReceivingMiddleware(identify, trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handler := NewHandler(cfg.Services.Habits, cfg.Services.Spaces, cfg.Services.Lists, cfg.Services.Activity, cfg.Locale)
	registerTools(server, handler, cfg.Logger)

	return server
}
