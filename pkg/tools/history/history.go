package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devbelt/toolbox-mcp/pkg/history"
	"github.com/devbelt/toolbox-mcp/pkg/server"
	"github.com/devbelt/toolbox-mcp/pkg/tools"
	"github.com/devbelt/toolbox-mcp/pkg/types"
	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

type Input struct {
	Action string `json:"action" validate:"required,oneof=list clear"`
	Tool   string `json:"tool,omitempty"`
	Limit  int    `json:"limit,omitempty" validate:"min=0,max=100"`
}

type Tool struct {
	logger    zerolog.Logger
	validator *validator.Validate
	store     *history.Store
}

func (t *Tool) Register(srv *server.Server) error {
	tool := &mcp.Tool{
		Name:        "history",
		Description: "Browse and manage per-tool invocation history. Actions: list (requires tool, optional limit), clear (one tool, or everything when tool is omitted).",
	}

	t.store = srv.History()

	mcp.AddTool(&srv.Server, tool, t.HistoryHandler)
	t.logger.Debug().Msg("history tool registered")

	return nil
}

func (t *Tool) HistoryHandler(ctx context.Context, _ *mcp.CallToolRequest, input Input) (*mcp.CallToolResult, any, error) {
	if err := t.validator.Struct(input); err != nil {
		return nil, nil, fmt.Errorf("validation error: %w", err)
	}

	var resultText string

	switch input.Action {
	case "list":
		if input.Tool == "" {
			return nil, nil, fmt.Errorf("tool is required for list action")
		}
		limit := input.Limit
		if limit == 0 {
			limit = types.MaxHistoryLimit
		}
		entries := t.store.List(input.Tool)
		if len(entries) > limit {
			entries = entries[:limit]
		}
		data, _ := json.MarshalIndent(map[string]any{
			"tool":    input.Tool,
			"total":   len(entries),
			"entries": entries,
		}, "", "  ")
		resultText = string(data)

	case "clear":
		if input.Tool == "" {
			t.store.ClearAll(ctx)
			resultText = "All tool history cleared"
		} else {
			t.store.Clear(ctx, input.Tool)
			resultText = fmt.Sprintf("History for %s cleared", input.Tool)
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: resultText},
		},
	}, nil, nil
}

func New(logger zerolog.Logger) tools.Tool {
	return &Tool{
		logger:    logger.With().Str("tool", "history").Logger(),
		validator: validator.New(),
	}
}
