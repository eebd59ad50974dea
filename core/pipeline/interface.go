package pipeline

import (
	"fmt"

	"github.com/annotator-ai/nlu/model"
)

// ProcessFunc enriches a message in place, typically via Message.Update.
// The args mapping carries shared context between stages (e.g. a loaded
// model handle); components declare which keys they need.
type ProcessFunc func(message *model.Message, args map[string]any) error

// Component is one named stage of an annotation pipeline (tokenizer,
// classifier, entity extractor). Implementations live outside this core.
type Component interface {
	// Name is the stage name recorded in model metadata.
	Name() string
	// RequiredArgs lists the context keys the stage needs to run.
	RequiredArgs() []string
	// Process enriches a single message.
	Process(message *model.Message, args map[string]any) error
}

// FuncComponent adapts a ProcessFunc into a Component.
type FuncComponent struct {
	ComponentName string
	Required      []string
	Fn            ProcessFunc
}

// NewComponent creates a function-backed pipeline component.
func NewComponent(name string, required []string, fn ProcessFunc) *FuncComponent {
	return &FuncComponent{
		ComponentName: name,
		Required:      required,
		Fn:            fn,
	}
}

func (c *FuncComponent) Name() string {
	return c.ComponentName
}

func (c *FuncComponent) RequiredArgs() []string {
	return c.Required
}

func (c *FuncComponent) Process(message *model.Message, args map[string]any) error {
	return c.Fn(message, args)
}

// Registry maps component names to their implementations.
type Registry map[string]Component

// Register adds a component under its name.
func (r Registry) Register(component Component) {
	r[component.Name()] = component
}

// Pipeline is the ordered list of components a model was built with.
type Pipeline struct {
	Components []Component
}

// FromMetadata resolves the ordered stage names of the model metadata against
// the registry. An unknown stage name makes the project unloadable.
func FromMetadata(metadata *model.ModelMetadata, registry Registry) (*Pipeline, error) {
	names := metadata.Pipeline()
	components := make([]Component, 0, len(names))
	for _, name := range names {
		component, ok := registry[name]
		if !ok {
			return nil, &model.InvalidProjectError{
				Message: fmt.Sprintf("unknown pipeline component '%v'", name),
			}
		}
		components = append(components, component)
	}
	return &Pipeline{Components: components}, nil
}

// Process runs every component over the message in pipeline order. Before a
// component runs, its required args are checked against the provided context;
// a missing one aborts with a MissingArgumentError.
func (p *Pipeline) Process(message *model.Message, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	for _, component := range p.Components {
		for _, required := range component.RequiredArgs() {
			if _, ok := args[required]; !ok {
				return &model.MissingArgumentError{
					Message: fmt.Sprintf("component '%v' requires argument '%v'", component.Name(), required),
				}
			}
		}
		if err := component.Process(message, args); err != nil {
			return fmt.Errorf("error in component '%v': %w", component.Name(), err)
		}
	}
	return nil
}
