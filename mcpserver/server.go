// Package mcpserver exposes the standings read API as Model Context Protocol
// tools so assistants can query tables and brackets.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Dosada05/football-standings/models"
	"github.com/Dosada05/football-standings/services"
	"github.com/Dosada05/football-standings/standings"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "football-standings"
	serverVersion = "1.0.0"
)

type StandingsArgs struct {
	TournamentID int    `json:"tournament_id" jsonschema:"Tournament id (required)"`
	PhaseID      int    `json:"phase_id,omitempty" jsonschema:"Phase id (0 = whole tournament)"`
	Group        string `json:"group,omitempty" jsonschema:"Group label filter"`
}

type TournamentArgs struct {
	TournamentID int `json:"tournament_id" jsonschema:"Tournament id (required)"`
}

type ClassifyArgs struct {
	Tag string `json:"tag" jsonschema:"Phase tag, e.g. SEMIFINAL or 'round of 16'"`
}

type ListTournamentsArgs struct {
	Status string `json:"status,omitempty" jsonschema:"soon|registration|active|completed|canceled"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Page size (default 20)"`
	Offset int    `json:"offset,omitempty" jsonschema:"Offset"`
}

type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tools holds the tool handlers; each one is a thin adapter over a service.
type Tools struct {
	standings   services.StandingsService
	tournaments services.TournamentService
}

func NewTools(ss services.StandingsService, ts services.TournamentService) *Tools {
	return &Tools{standings: ss, tournaments: ts}
}

// NewServer registers every tool and returns the server with its registry.
func NewServer(t *Tools) (*mcp.Server, []ToolInfo) {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registry := make([]ToolInfo, 0, 4)

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_standings",
		Description: "Ranked table, groups, knockout rounds and display mode of a tournament",
	}, t.GetStandings)
	addTool(server, &registry, &mcp.Tool{
		Name:        "list_phases",
		Description: "Phases of a tournament with kind and bracket order",
	}, t.ListPhases)
	addTool(server, &registry, &mcp.Tool{
		Name:        "classify_phase",
		Description: "Kind (league or knockout) and bracket order of a phase tag",
	}, t.ClassifyPhase)
	addTool(server, &registry, &mcp.Tool{
		Name:        "list_tournaments",
		Description: "Tournaments, optionally filtered by status",
	}, t.ListTournaments)

	return server, registry
}

// NewHTTPHandler serves the MCP streamable HTTP transport.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func addTool[T any](server *mcp.Server, registry *[]ToolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func (t *Tools) GetStandings(ctx context.Context, _ *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
	if args.TournamentID <= 0 {
		return toolError(errors.New("tournament_id is required")), nil, nil
	}
	q := services.StandingsQuery{Group: args.Group}
	if args.PhaseID > 0 {
		q.PhaseID = &args.PhaseID
	}
	return toolJSON(t.standings.GetStandings(ctx, args.TournamentID, q))
}

func (t *Tools) ListPhases(ctx context.Context, _ *mcp.CallToolRequest, args TournamentArgs) (*mcp.CallToolResult, any, error) {
	if args.TournamentID <= 0 {
		return toolError(errors.New("tournament_id is required")), nil, nil
	}
	return toolJSON(t.standings.ListPhases(ctx, args.TournamentID))
}

func (t *Tools) ClassifyPhase(_ context.Context, _ *mcp.CallToolRequest, args ClassifyArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Tag) == "" {
		return toolError(errors.New("tag is required")), nil, nil
	}
	tag, err := standings.ParsePhaseTag(args.Tag)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(standings.ClassifyPhase(tag))
}

func (t *Tools) ListTournaments(ctx context.Context, _ *mcp.CallToolRequest, args ListTournamentsArgs) (*mcp.CallToolResult, any, error) {
	filter := services.ListTournamentsFilter{Limit: args.Limit, Offset: args.Offset}
	if s := strings.TrimSpace(args.Status); s != "" {
		status := models.TournamentStatus(strings.ToLower(s))
		filter.Status = &status
	}
	return toolJSON(t.tournaments.ListTournaments(ctx, filter))
}

func toolJSON(v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
