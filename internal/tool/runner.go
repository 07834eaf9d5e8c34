package tool

import (
	"context"
	"fmt"
	"strings"
)

// Runner executes registered tools.
type Runner struct {
	registry *Registry
}

func NewRunner(registry *Registry) *Runner {
	return &Runner{registry: registry}
}

func (r *Runner) RunOne(ctx context.Context, name string, attrs map[string]string) (Result, error) {
	if r == nil || r.registry == nil {
		return Result{}, fmt.Errorf("tool runner is not initialized")
	}
	toolName := strings.TrimSpace(name)
	if toolName == "" {
		return Result{}, fmt.Errorf("validation: empty tool name")
	}
	t, ok := r.registry.Get(toolName)
	if !ok {
		return Result{}, fmt.Errorf("validation: unknown tool: %s", toolName)
	}
	if err := t.Validate(attrs); err != nil {
		return Result{}, err
	}
	return t.Execute(ctx, attrs)
}
