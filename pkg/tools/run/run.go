package run

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devbelt/toolbox-mcp/pkg/dispatch"
	"github.com/devbelt/toolbox-mcp/pkg/server"
	"github.com/devbelt/toolbox-mcp/pkg/tools"
	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

type Input struct {
	Tool      string            `json:"tool" validate:"required"`
	Input     string            `json:"input,omitempty"`
	Options   map[string]string `json:"options,omitempty"`
	NoHistory bool              `json:"no_history,omitempty"`
}

type Tool struct {
	logger    zerolog.Logger
	validator *validator.Validate
	shell     *dispatch.Shell
}

func (t *Tool) Register(srv *server.Server) error {
	tool := &mcp.Tool{
		Name:        "run",
		Description: "Run a registered utility tool by id with the given input and options. Set no_history for sensitive input.",
	}

	t.shell = srv.Shell()

	mcp.AddTool(&srv.Server, tool, t.RunHandler)
	t.logger.Debug().Msg("run tool registered")

	return nil
}

func (t *Tool) RunHandler(ctx context.Context, _ *mcp.CallToolRequest, input Input) (*mcp.CallToolResult, any, error) {
	if err := t.validator.Struct(input); err != nil {
		return nil, nil, fmt.Errorf("validation error: %w", err)
	}

	var execOpts []dispatch.ExecOption
	if input.NoHistory {
		execOpts = append(execOpts, dispatch.WithoutHistory())
	}

	res := t.shell.Execute(ctx, input.Tool, input.Input, input.Options, execOpts...)

	data, _ := json.MarshalIndent(res, "", "  ")

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func New(logger zerolog.Logger) tools.Tool {
	return &Tool{
		logger:    logger.With().Str("tool", "run").Logger(),
		validator: validator.New(),
	}
}
