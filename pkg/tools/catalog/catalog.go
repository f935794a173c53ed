package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
	"github.com/devbelt/toolbox-mcp/pkg/server"
	"github.com/devbelt/toolbox-mcp/pkg/tools"
	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

type Input struct {
	Category string `json:"category,omitempty" validate:"omitempty,oneof=encoding formatting generators text time"`
}

type entry struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	DisplayName   string `json:"display_name"`
	RequiresInput bool   `json:"requires_input"`
}

type Tool struct {
	logger    zerolog.Logger
	validator *validator.Validate
	registry  *registry.Registry
}

func (t *Tool) Register(srv *server.Server) error {
	tool := &mcp.Tool{
		Name:        "catalog",
		Description: "List the registered utility tools, optionally filtered by category (encoding, formatting, generators, text, time).",
	}

	t.registry = srv.Registry()

	mcp.AddTool(&srv.Server, tool, t.CatalogHandler)
	t.logger.Debug().Msg("catalog tool registered")

	return nil
}

func (t *Tool) CatalogHandler(ctx context.Context, _ *mcp.CallToolRequest, input Input) (*mcp.CallToolResult, any, error) {
	if err := t.validator.Struct(input); err != nil {
		return nil, nil, fmt.Errorf("validation error: %w", err)
	}

	seq := t.registry.List()
	if input.Category != "" {
		seq = t.registry.ListByCategory(registry.Category(input.Category))
	}

	entries := make([]entry, 0, t.registry.Len())
	for d := range seq {
		entries = append(entries, entry{
			ID:            d.ID,
			Category:      string(d.Category),
			DisplayName:   d.DisplayName,
			RequiresInput: d.RequiresInput,
		})
	}

	data, _ := json.MarshalIndent(map[string]any{
		"total": len(entries),
		"tools": entries,
	}, "", "  ")

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func New(logger zerolog.Logger) tools.Tool {
	return &Tool{
		logger:    logger.With().Str("tool", "catalog").Logger(),
		validator: validator.New(),
	}
}
