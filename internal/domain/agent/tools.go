package agent

import (
	"github.com/sashabaranov/go-openai"
)

// Tool names exposed to the model. The dispatcher only executes names
// from this closed set.
const (
	ToolAddTask      = "add_task"
	ToolListTasks    = "list_tasks"
	ToolCompleteTask = "complete_task"
	ToolDeleteTask   = "delete_task"
	ToolUpdateTask   = "update_task"
)

// AvailableTools returns the function schemas advertised to the model.
// The user_id parameter appears in every schema so the model knows it
// exists, but the dispatcher always overwrites it with the
// authenticated user before execution.
func AvailableTools() []openai.Tool {
	userIDProp := map[string]any{
		"type":        "string",
		"description": "User identifier (automatically provided)",
	}
	taskIDProp := func(action string) map[string]any {
		return map[string]any{
			"type":        "integer",
			"description": "ID of the task to " + action,
			"minimum":     1,
		}
	}

	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolAddTask,
				Description: "Create a new task for the user. Use when user expresses a todo item, need, or intention (e.g., 'I need to buy groceries', 'remind me to call dentist').",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"user_id": userIDProp,
						"title": map[string]any{
							"type":        "string",
							"description": "Task title (1-200 characters). Extract from user's message.",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Optional task details (max 1000 characters)",
						},
					},
					"required": []string{"user_id", "title"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolListTasks,
				Description: "Retrieve user's tasks with optional filtering by completion status. Returns tasks in reverse chronological order (newest first).",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"user_id": userIDProp,
						"filter": map[string]any{
							"type":        "string",
							"enum":        []string{"all", "pending", "completed"},
							"description": "Task filter: 'all' for all tasks, 'pending' for incomplete tasks, 'completed' for completed tasks",
							"default":     "all",
						},
						"limit": map[string]any{
							"type":        "integer",
							"description": "Maximum number of tasks to return (1-200)",
							"minimum":     1,
							"maximum":     200,
							"default":     50,
						},
						"offset": map[string]any{
							"type":        "integer",
							"description": "Pagination offset (number of tasks to skip)",
							"minimum":     0,
							"default":     0,
						},
					},
					"required": []string{"user_id"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolCompleteTask,
				Description: "Mark an existing task as completed. This is idempotent - completing an already-completed task will succeed.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"user_id": userIDProp,
						"task_id": taskIDProp("mark as complete"),
					},
					"required": []string{"user_id", "task_id"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolDeleteTask,
				Description: "Permanently remove a task from the user's task list. This action cannot be undone.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"user_id": userIDProp,
						"task_id": taskIDProp("delete"),
					},
					"required": []string{"user_id", "task_id"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolUpdateTask,
				Description: "Modify an existing task's title and/or description. At least one field must be provided.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"user_id": userIDProp,
						"task_id": taskIDProp("update"),
						"title": map[string]any{
							"type":        "string",
							"description": "New task title (1-200 characters)",
							"minLength":   1,
							"maxLength":   200,
						},
						"description": map[string]any{
							"type":        "string",
							"description": "New task description (max 1000 characters)",
							"maxLength":   1000,
						},
						"completed": map[string]any{
							"type":        "boolean",
							"description": "Mark task as completed (true) or incomplete (false)",
						},
					},
					"required": []string{"user_id", "task_id"},
				},
			},
		},
	}
}
