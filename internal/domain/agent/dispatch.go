package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/task"
)

// ToolExecution is one entry in the tool results relayed back to the
// model and echoed in the chat response.
type ToolExecution struct {
	Tool   string       `json:"tool"`
	Result *task.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type addTaskArgs struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type listTasksArgs struct {
	Filter *string `json:"filter"`
	Limit  *int    `json:"limit"`
	Offset *int    `json:"offset"`
}

type taskIDArgs struct {
	TaskID int `json:"task_id"`
}

type updateTaskArgs struct {
	TaskID      int     `json:"task_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ToolDispatcher executes tool calls requested by the model against
// the task service. The dispatch table is closed: names outside it are
// reported as errors, never executed. The authenticated user id is
// injected into every call; any user_id the model put in the arguments
// is discarded.
type ToolDispatcher struct {
	handlers map[string]func(ctx context.Context, userID string, args json.RawMessage) task.Result
	log      zerolog.Logger
}

func NewToolDispatcher(tasks *task.TaskService, log zerolog.Logger) *ToolDispatcher {
	d := &ToolDispatcher{log: log}
	d.handlers = map[string]func(ctx context.Context, userID string, args json.RawMessage) task.Result{
		ToolAddTask: func(ctx context.Context, userID string, raw json.RawMessage) task.Result {
			var args addTaskArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return malformedArguments(err)
			}
			return tasks.AddTask(ctx, userID, args.Title, args.Description)
		},
		ToolListTasks: func(ctx context.Context, userID string, raw json.RawMessage) task.Result {
			var args listTasksArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return malformedArguments(err)
			}
			filter := task.FilterAll
			if args.Filter != nil {
				filter = *args.Filter
			}
			limit := task.DefaultListLimit
			if args.Limit != nil {
				limit = *args.Limit
			}
			offset := 0
			if args.Offset != nil {
				offset = *args.Offset
			}
			return tasks.ListTasks(ctx, userID, filter, limit, offset)
		},
		ToolCompleteTask: func(ctx context.Context, userID string, raw json.RawMessage) task.Result {
			var args taskIDArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return malformedArguments(err)
			}
			return tasks.CompleteTask(ctx, userID, args.TaskID)
		},
		ToolDeleteTask: func(ctx context.Context, userID string, raw json.RawMessage) task.Result {
			var args taskIDArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return malformedArguments(err)
			}
			return tasks.DeleteTask(ctx, userID, args.TaskID)
		},
		ToolUpdateTask: func(ctx context.Context, userID string, raw json.RawMessage) task.Result {
			var args updateTaskArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return malformedArguments(err)
			}
			return tasks.UpdateTask(ctx, userID, args.TaskID, args.Title, args.Description, args.Completed)
		},
	}
	return d
}

func malformedArguments(err error) task.Result {
	return task.Result{
		Success: false,
		Error:   task.ErrValidation,
		Message: fmt.Sprintf("Malformed tool arguments: %v", err),
	}
}

// Dispatch executes a single tool call. Failures are captured in the
// returned execution so one bad call never aborts the rest of the turn.
func (d *ToolDispatcher) Dispatch(ctx context.Context, userID string, call ToolCall) ToolExecution {
	handler, ok := d.handlers[call.Name]
	if !ok {
		d.log.Warn().Str("tool", call.Name).Msg("unknown tool requested")
		return ToolExecution{
			Tool:  call.Name,
			Error: fmt.Sprintf("unknown tool: %s", call.Name),
		}
	}

	result := handler(ctx, userID, json.RawMessage(call.Arguments))

	d.log.Info().
		Str("tool", call.Name).
		Str("user_id", userID).
		Bool("success", result.Success).
		Str("error", result.Error).
		Msg("tool executed")

	return ToolExecution{Tool: call.Name, Result: &result}
}

// DispatchAll executes the model's tool calls in request order.
func (d *ToolDispatcher) DispatchAll(ctx context.Context, userID string, calls []ToolCall) []ToolExecution {
	executions := make([]ToolExecution, 0, len(calls))
	for _, call := range calls {
		executions = append(executions, d.Dispatch(ctx, userID, call))
	}
	return executions
}
