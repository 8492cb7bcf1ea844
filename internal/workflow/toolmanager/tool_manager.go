// Package toolmanager registers tools by name and dispatches model tool calls.
package toolmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/Cyclone1070/codereview/internal/workflow"
	"github.com/chainguard-dev/clog"
	"github.com/mitchellh/mapstructure"
)

// ToolManager is an ordered registry of uniquely named tools.
type ToolManager struct {
	order    []string
	registry map[string]toolImpl
}

// NewToolManager registers tools in the given order. It fails on the first
// empty or duplicate name.
func NewToolManager(tools ...toolImpl) (*ToolManager, error) {
	tm := &ToolManager{
		registry: make(map[string]toolImpl),
	}
	for _, t := range tools {
		if err := tm.Register(t); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Register adds t. A name that is already taken is rejected and the earlier
// registration is kept.
func (m *ToolManager) Register(t toolImpl) error {
	name := t.Name()
	if name == "" {
		return &RegistrationError{Name: name, Cause: ErrEmptyToolName}
	}
	if _, exists := m.registry[name]; exists {
		return &RegistrationError{Name: name, Cause: ErrDuplicateTool}
	}
	m.registry[name] = t
	m.order = append(m.order, name)
	return nil
}

// Names returns the registered tool names in registration order.
func (m *ToolManager) Names() []string {
	return append([]string(nil), m.order...)
}

// Declarations returns tool schemas in registration order.
func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.order))
	for _, name := range m.order {
		decls = append(decls, m.registry[name].Declaration())
	}
	return decls
}

// Execute runs one tool call and returns the tool message answering it.
// Unknown tools and bad arguments are reported to the model, not to the caller.
func (m *ToolManager) Execute(ctx context.Context, tc provider.ToolCall, events chan<- workflow.Event) (provider.Message, error) {
	log := clog.FromContext(ctx).With("tool", tc.Name).With("call_id", tc.ID)

	t, ok := m.registry[tc.Name]
	if !ok {
		log.Warn("model requested unknown tool")
		m.emitRejected(ctx, tc.Name, events)
		return m.reply(tc, fmt.Sprintf("Error: tool %q does not exist.\n\nAvailable tools: %s",
			tc.Name, strings.Join(m.order, ", "))), nil
	}

	req := t.Input()
	if err := decodeArgs(t.Declaration(), tc.Args, req); err != nil {
		log.With("error", err).Warn("invalid tool arguments")
		m.emitRejected(ctx, tc.Name, events)
		declJSON, _ := json.MarshalIndent(t.Declaration(), "", "  ")
		return m.reply(tc, fmt.Sprintf("Error: invalid arguments for tool %q: %v\n\nExpected schema:\n%s",
			tc.Name, err, declJSON)), nil
	}

	display := ""
	if s, ok := req.(fmt.Stringer); ok {
		display = s.String()
	}
	workflow.Emit(ctx, events, workflow.ToolStartEvent{ToolName: tc.Name, RequestDisplay: display})

	res, err := t.Execute(ctx, req)
	if err != nil {
		workflow.Emit(ctx, events, workflow.ToolEndEvent{ToolName: tc.Name, Display: tool.StringDisplay("Cancelled")})
		return provider.Message{}, err
	}

	log.With("failed", res.IsErr()).Debug("tool finished")
	workflow.Emit(ctx, events, workflow.ToolEndEvent{ToolName: tc.Name, Display: res.Display()})

	if err := ctx.Err(); err != nil {
		return provider.Message{}, err
	}
	return m.reply(tc, res.LLMContent()), nil
}

func (m *ToolManager) reply(tc provider.ToolCall, content string) provider.Message {
	return provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: tc.ID,
		Name:       tc.Name,
		Content:    content,
	}
}

func (m *ToolManager) emitRejected(ctx context.Context, name string, events chan<- workflow.Event) {
	workflow.Emit(ctx, events, workflow.ToolStartEvent{ToolName: name})
	workflow.Emit(ctx, events, workflow.ToolEndEvent{ToolName: name, Display: tool.ErrorDisplay("Invalid tool request")})
}

// decodeArgs checks the call against the declared required parameters and
// decodes it into req. Unknown keys are rejected.
func decodeArgs(decl tool.Declaration, args map[string]any, req any) error {
	if decl.Parameters != nil {
		var missing []string
		for _, name := range decl.Parameters.Required {
			if _, ok := args[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required parameter(s): %s", strings.Join(missing, ", "))
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           req,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}
