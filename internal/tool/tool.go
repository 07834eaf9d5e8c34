package tool

import "context"

// Tool is the common abstraction for all tag-dispatched tools.
type Tool interface {
	Name() string
	// Usage is the XML tag shape advertised to the model in the system prompt.
	Usage() string
	Validate(attrs map[string]string) error
	Execute(ctx context.Context, attrs map[string]string) (Result, error)
}
