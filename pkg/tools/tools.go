package tools

import (
	"github.com/devbelt/toolbox-mcp/pkg/server"
)

type Tool interface {
	Register(srv *server.Server) error
}
