package server

import (
	"context"

	"github.com/devbelt/toolbox-mcp/pkg/dispatch"
	"github.com/devbelt/toolbox-mcp/pkg/history"
	"github.com/devbelt/toolbox-mcp/pkg/registry"
	"github.com/devbelt/toolbox-mcp/pkg/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	mcp.Server
	registry *registry.Registry
	shell    *dispatch.Shell
	history  *history.Store
	storage  storage.Storage
}

func NewServer(impl *mcp.Implementation, reg *registry.Registry, shell *dispatch.Shell, hist *history.Store, store storage.Storage) *Server {
	return &Server{
		Server:   *mcp.NewServer(impl, nil),
		registry: reg,
		shell:    shell,
		history:  hist,
		storage:  store,
	}
}

func (s *Server) Registry() *registry.Registry {
	return s.registry
}

func (s *Server) Shell() *dispatch.Shell {
	return s.shell
}

func (s *Server) History() *history.Store {
	return s.history
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
