package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/notexe/remind/internal/reminder"
)

const (
	mcpServerName    = "remind"
	mcpServerVersion = "1.0.0"
)

// MCPServer exposes the reminder list as MCP tools over stdio.
type MCPServer struct {
	mcpServer *server.MCPServer
	app       *App
}

// NewMCPServer creates the MCP server backed by the given app.
func NewMCPServer(a *App) *MCPServer {
	s := &MCPServer{app: a}

	s.mcpServer = server.NewMCPServer(
		mcpServerName,
		mcpServerVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *MCPServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a new reminder with text, a calendar date and a time of day"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Reminder text")),
			mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD (local calendar day)")),
			mcp.WithString("time", mcp.Required(), mcp.Description("Time as HH:MM (24h, local)")),
			mcp.WithString("message", mcp.Description("Optional longer message")),
			mcp.WithString("tag", mcp.Description("Optional tag/category")),
			mcp.WithString("recurrence", mcp.Description("Recurrence: none, daily, weekly, monthly, yearly")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List reminders sorted by due time, optionally filtered by date, tag or search query"),
			mcp.WithString("date", mcp.Description("Filter by date (YYYY-MM-DD)")),
			mcp.WithString("tag", mcp.Description("Filter by tag")),
			mcp.WithString("query", mcp.Description("Search text or tag")),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Toggle a reminder's completed state"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id or unique id prefix")),
		),
		s.handleCompleteReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id or unique id prefix")),
		),
		s.handleDeleteReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's fields (text, date, time, message, tag, recurrence)"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id or unique id prefix")),
			mcp.WithString("text", mcp.Description("New text")),
			mcp.WithString("date", mcp.Description("New date (YYYY-MM-DD)")),
			mcp.WithString("time", mcp.Description("New time (HH:MM)")),
			mcp.WithString("message", mcp.Description("New message")),
			mcp.WithString("tag", mcp.Description("New tag")),
			mcp.WithString("recurrence", mcp.Description("New recurrence kind")),
		),
		s.handleUpdateReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_history",
			mcp.WithDescription("Get the log of completed and deleted reminders, newest first"),
		),
		s.handleGetHistory,
	)
}

func (s *MCPServer) handleAddReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := reminder.Reminder{
		Text:       req.GetString("text", ""),
		Date:       req.GetString("date", ""),
		Time:       req.GetString("time", ""),
		Message:    req.GetString("message", ""),
		Tag:        req.GetString("tag", ""),
		Recurrence: req.GetString("recurrence", ""),
	}

	added, err := s.app.Add(r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *MCPServer) handleListReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := reminder.Filter{
		Date:  req.GetString("date", ""),
		Tag:   req.GetString("tag", ""),
		Query: req.GetString("query", ""),
	}

	items, err := s.app.List(filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}

	if len(items) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}

	output, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *MCPServer) handleCompleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	item, err := s.app.Resolve(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	toggled, err := s.app.ToggleComplete(item.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete reminder: %v", err)), nil
	}

	if toggled.Completed {
		return mcp.NewToolResultText(fmt.Sprintf("Reminder %q marked as completed.", toggled.Text)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %q marked as incomplete.", toggled.Text)), nil
}

func (s *MCPServer) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	item, err := s.app.Resolve(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.app.Delete(item.ID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %q deleted.", item.Text)), nil
}

func (s *MCPServer) handleUpdateReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	item, err := s.app.Resolve(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var fields UpdateFields
	if v := req.GetString("text", ""); v != "" {
		fields.Text = &v
	}
	if v := req.GetString("date", ""); v != "" {
		fields.Date = &v
	}
	if v := req.GetString("time", ""); v != "" {
		fields.Time = &v
	}
	if v := req.GetString("message", ""); v != "" {
		fields.Message = &v
	}
	if v := req.GetString("tag", ""); v != "" {
		fields.Tag = &v
	}
	if v := req.GetString("recurrence", ""); v != "" {
		fields.Recurrence = &v
	}

	updated, err := s.app.Update(item.ID, fields)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(updated, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *MCPServer) handleGetHistory(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.app.History.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load history: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("History is empty."), nil
	}

	// Newest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	output, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}
