package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerLoadWeekTool(srv, svc)
	registerGetWeekTool(srv, svc)
	registerListWeeksTool(srv, svc)
	registerAddRoleTool(srv, svc)
	registerDeleteRoleTool(srv, svc)
	registerAddGoalTool(srv, svc)
	registerDeleteGoalTool(srv, svc)
	registerToggleGoalTool(srv, svc)
	registerAddPriorityTool(srv, svc)
	registerAddTimeBlockTool(srv, svc)
	registerAddEveningBlockTool(srv, svc)
	registerDropTool(srv, svc)
}

func weekArg() mcp.ToolOption {
	return mcp.WithString("week",
		mcp.Description("ISO week id such as 2026-W03. Defaults to the loaded week."),
	)
}

func dayArg(desc string) mcp.ToolOption {
	return mcp.WithString("day",
		mcp.Required(),
		mcp.Description(desc+" Day name (monday) or index (0 is Sunday)."),
	)
}

func registerLoadWeekTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"load_week",
		mcp.WithDescription("Load a week, creating it with the previous week's roles when it does not exist."),
		mcp.WithString("week",
			mcp.Description("ISO week id such as 2026-W03. Defaults to the current calendar week."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w, err := svc.LoadWeek(ctx, week.ID(request.GetString("week", "")))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(w)
	})
}

func registerGetWeekTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_week",
		mcp.WithDescription("Return a week snapshot without changing which week is loaded."),
		weekArg(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w, err := svc.Week(ctx, week.ID(request.GetString("week", "")))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(w)
	})
}

func registerListWeeksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_weeks",
		mcp.WithDescription("List every stored week with role, goal and block counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		weeks, err := svc.ListWeeks(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"weeks": weeks,
			"count": len(weeks),
		})
	})
}

func registerAddRoleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_role",
		mcp.WithDescription("Add a role. Its color is picked from the palette by role count."),
		weekArg(),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Role name, for example Parent or Engineer."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		r, err := svc.AddRole(ctx, week.ID(request.GetString("week", "")), name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(r)
	})
}

func registerDeleteRoleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_role",
		mcp.WithDescription("Delete a role with its goals and every priority and block that points at them."),
		weekArg(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Role identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteRole(ctx, week.ID(request.GetString("week", "")), id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"deleted": id})
	})
}

func registerAddGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_goal",
		mcp.WithDescription("Add a goal under a role."),
		weekArg(),
		mcp.WithString("role_id",
			mcp.Required(),
			mcp.Description("Role that owns the goal."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What the goal is."),
		),
		mcp.WithString("notes",
			mcp.Description("Optional notes."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Week   string `json:"week"`
			RoleID string `json:"role_id"`
			Text   string `json:"text"`
			Notes  string `json:"notes"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		g, err := svc.AddGoal(ctx, week.ID(args.Week), app.GoalInput{
			RoleID: args.RoleID,
			Text:   args.Text,
			Notes:  args.Notes,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerDeleteGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_goal",
		mcp.WithDescription("Delete a goal and every priority and block that points at it."),
		weekArg(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Goal identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteGoal(ctx, week.ID(request.GetString("week", "")), id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"deleted": id})
	})
}

func registerToggleGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_goal",
		mcp.WithDescription("Flip a goal between open and completed."),
		weekArg(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Goal identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		g, err := svc.ToggleGoal(ctx, week.ID(request.GetString("week", "")), id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerAddPriorityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_priority",
		mcp.WithDescription("Pin a goal to a day's priority list."),
		weekArg(),
		mcp.WithString("goal_id",
			mcp.Required(),
			mcp.Description("Goal to pin."),
		),
		dayArg("Day of the priority."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Week   string `json:"week"`
			GoalID string `json:"goal_id"`
			Day    string `json:"day"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		day, err := week.ParseDay(args.Day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		p, err := svc.AddPriority(ctx, week.ID(args.Week), app.PriorityInput{GoalID: args.GoalID, Day: day})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(p)
	})
}

func registerAddTimeBlockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_time_block",
		mcp.WithDescription("Schedule a block on the 8:00-20:00 day grid, linked to a goal or freestyle."),
		weekArg(),
		dayArg("Day of the block."),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time on a half hour, for example 9:30."),
		),
		mcp.WithString("duration",
			mcp.Description("Length such as 1h or 90m. Defaults to 1h."),
		),
		mcp.WithString("goal_id",
			mcp.Description("Goal to link. Leave empty for a freestyle block."),
		),
		mcp.WithString("title",
			mcp.Description("Title of a freestyle block."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Week     string `json:"week"`
			Day      string `json:"day"`
			Start    string `json:"start"`
			Duration string `json:"duration"`
			GoalID   string `json:"goal_id"`
			Title    string `json:"title"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		day, err := week.ParseDay(args.Day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		slot := timeutil.TimeToSlot(args.Start)
		if slot == timeutil.InvalidSlot {
			return mcp.NewToolResultError(fmt.Sprintf("start %q is not on the 8:00-19:30 grid", args.Start)), nil
		}
		slots, err := timeutil.ParseDuration(args.Duration)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		in := app.TimeBlockInput{
			Type:      linkType(args.GoalID),
			GoalID:    args.GoalID,
			Day:       day,
			StartSlot: slot,
			Duration:  slots,
			Title:     args.Title,
		}
		b, err := svc.AddTimeBlock(ctx, week.ID(args.Week), in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(b)
	})
}

func registerAddEveningBlockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_evening_block",
		mcp.WithDescription("Fill a day's single evening slot. Fails when the evening is taken."),
		weekArg(),
		dayArg("Day of the evening."),
		mcp.WithString("goal_id",
			mcp.Description("Goal to link. Leave empty for a freestyle evening."),
		),
		mcp.WithString("title",
			mcp.Description("Title of a freestyle evening."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Week   string `json:"week"`
			Day    string `json:"day"`
			GoalID string `json:"goal_id"`
			Title  string `json:"title"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		day, err := week.ParseDay(args.Day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		b, err := svc.AddEveningBlock(ctx, week.ID(args.Week), app.EveningBlockInput{
			Type:   linkType(args.GoalID),
			GoalID: args.GoalID,
			Day:    day,
			Title:  args.Title,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(b)
	})
}

func registerDropTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"drop",
		mcp.WithDescription("Drag a goal, block, priority or evening onto a day's priorities, time grid or evening, as the planner board does."),
		weekArg(),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("What is dragged."),
			mcp.Enum("goal", "timeBlock", "priority", "evening"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Identifier of the dragged item."),
		),
		mcp.WithString("zone",
			mcp.Required(),
			mcp.Description("Where it is dropped."),
			mcp.Enum("priorities", "timegrid", "evening"),
		),
		dayArg("Day column of the drop."),
		mcp.WithString("start",
			mcp.Description("Grid time for timegrid drops, for example 14:00."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Week  string `json:"week"`
			Kind  string `json:"kind"`
			ID    string `json:"id"`
			Zone  string `json:"zone"`
			Day   string `json:"day"`
			Start string `json:"start"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		kind, err := dnd.ParseKind(args.Kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		zone, err := dnd.ParseZone(args.Zone)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := week.ParseDay(args.Day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		slot := week.Slot(0)
		if zone == dnd.ZoneTimeGrid {
			slot = timeutil.TimeToSlot(args.Start)
		}
		target, err := dnd.NewTarget(zone, day, slot)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := svc.Drop(ctx, week.ID(args.Week), kind, args.ID, target)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(out)
	})
}

func linkType(goalID string) week.BlockType {
	if goalID != "" {
		return week.BlockGoal
	}
	return week.BlockFreestyle
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
