package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stupiduntilnot/tagclaw/internal/chat"
	"github.com/stupiduntilnot/tagclaw/internal/control"
	"github.com/stupiduntilnot/tagclaw/internal/model"
	"github.com/stupiduntilnot/tagclaw/internal/tag"
	toolpkg "github.com/stupiduntilnot/tagclaw/internal/tool"
	"github.com/stupiduntilnot/tagclaw/internal/ui"
)

// Options wires an Agent together.
type Options struct {
	Provider      model.Provider
	Registry      *toolpkg.Registry
	Runner        *toolpkg.Runner
	Policy        control.Policy
	SystemPrompt  string
	HistoryWindow int
	Printer       *ui.Printer
	Spinner       *ui.Spinner
	Debug         bool
}

// Agent owns the dispatch loop: user input goes in, the model reply is
// scanned for tool tags, tools run, and their results feed the next model
// call until a reply carries no tags.
type Agent struct {
	id              string
	provider        model.Provider
	runner          *toolpkg.Runner
	parser          *tag.Parser
	transcript      *chat.Transcript
	compressor      chat.Compressor
	policy          control.Policy
	systemPrompt    string
	toolInstruction string
	printer         *ui.Printer
	spinner         *ui.Spinner
	debug           bool
}

func New(opts Options) *Agent {
	return &Agent{
		id:              uuid.NewString(),
		provider:        opts.Provider,
		runner:          opts.Runner,
		parser:          tag.NewParser(opts.Registry.Names()),
		transcript:      chat.NewTranscript(),
		compressor:      chat.Compressor{MaxMessages: opts.HistoryWindow},
		policy:          opts.Policy,
		systemPrompt:    opts.SystemPrompt,
		toolInstruction: buildToolInstruction(opts.Registry),
		printer:         opts.Printer,
		spinner:         opts.Spinner,
		debug:           opts.Debug,
	}
}

// ID returns the session identifier used in debug logs.
func (a *Agent) ID() string { return a.id }

// Transcript exposes the full conversation history.
func (a *Agent) Transcript() *chat.Transcript { return a.transcript }

// RunTurn processes one line of user input to completion. Limits reset per
// turn; the transcript carries over between turns.
func (a *Agent) RunTurn(ctx context.Context, input string) error {
	startedAt := time.Now()
	usedTurns := 0
	usedTokens := 0

	a.transcript.Append(chat.RoleUser, input)

	for {
		if err := control.CheckTurnLimit(a.policy, usedTurns); err != nil {
			return err
		}
		if err := control.CheckWallTime(a.policy, startedAt, time.Now()); err != nil {
			return err
		}
		usedTurns++

		history := a.compressor.Compress(a.transcript.Messages())
		messages := chat.Assemble(a.system(), history)

		callStart := time.Now()
		if a.spinner != nil {
			a.spinner.Start("thinking")
		}
		resp, err := a.provider.ChatCompletion(ctx, messages)
		if a.spinner != nil {
			a.spinner.Stop()
		}
		if err != nil {
			return err
		}
		if a.debug {
			log.Printf("[agent %s] turn=%d latency_ms=%d input_tokens=%d output_tokens=%d",
				a.id, usedTurns, time.Since(callStart).Milliseconds(), resp.InputTokens, resp.OutputTokens)
		}

		// Record the reply before any limit check so a tripped limit never
		// drops a completion the session already paid for.
		reply := strings.TrimSpace(resp.Content)
		a.transcript.Append(chat.RoleAssistant, reply)

		usedTokens += resp.InputTokens + resp.OutputTokens
		if err := control.CheckTokenLimit(a.policy, usedTokens); err != nil {
			return err
		}
		if err := control.CheckWallTime(a.policy, startedAt, time.Now()); err != nil {
			return err
		}

		calls := a.parser.Parse(reply)
		if len(calls) == 0 {
			if a.printer != nil {
				a.printer.Assistant(reply)
			}
			return nil
		}

		results := a.executeCalls(ctx, calls)
		a.transcript.Append(chat.RoleUser, "Tool results:\n"+results)
	}
}

// executeCalls runs every parsed call in order and flattens the outcomes
// into the text block fed back to the model. Tool failures are reported as
// error text rather than aborting the turn.
func (a *Agent) executeCalls(ctx context.Context, calls []tag.Call) string {
	var out strings.Builder
	for _, c := range calls {
		res, err := a.runner.RunOne(ctx, c.Name, c.Attrs)
		out.WriteString("tool=" + c.Name + "\n")
		if err != nil {
			// A failed execution may still carry output the model needs,
			// such as the exit code and stderr of a nonzero bash command.
			out.WriteString("error: " + err.Error() + "\n")
			if strings.TrimSpace(res.ForModel) != "" && res.ForModel != err.Error() {
				out.WriteString(res.ForModel)
				if !strings.HasSuffix(res.ForModel, "\n") {
					out.WriteString("\n")
				}
			}
			if a.printer != nil {
				summary := res.ForUser
				if summary == "" {
					summary = fmt.Sprintf("%s failed: %s", c.Name, err)
				}
				a.printer.ToolResult(summary, res.TruncatedLines || res.TruncatedBytes)
			}
			if a.debug {
				log.Printf("[agent %s] tool=%s error=%q", a.id, c.Name, err)
			}
			continue
		}
		out.WriteString(res.ForModel)
		if !strings.HasSuffix(res.ForModel, "\n") {
			out.WriteString("\n")
		}
		if a.printer != nil {
			a.printer.ToolResult(res.ForUser, res.TruncatedLines || res.TruncatedBytes)
		}
	}
	return out.String()
}

func (a *Agent) system() string {
	if a.systemPrompt == "" {
		return a.toolInstruction
	}
	return a.systemPrompt + "\n\n" + a.toolInstruction
}

// buildToolInstruction advertises the tag surface to the model. The usage
// strings come from the registry in registration order.
func buildToolInstruction(registry *toolpkg.Registry) string {
	var b strings.Builder
	b.WriteString("You can use tools in this environment by emitting self-closing XML tags ")
	b.WriteString("anywhere in your reply. Attribute values are double-quoted; escape ")
	b.WriteString(`newlines as \n, tabs as \t, quotes as \" and backslashes as \\. `)
	b.WriteString("Available tools:\n")
	for _, usage := range registry.Usages() {
		b.WriteString("  " + usage + "\n")
	}
	b.WriteString("Tool results arrive in the next user message. ")
	b.WriteString("When you need no more tools, reply with prose only and no tags. ")
	b.WriteString("Never run destructive commands such as rm -rf.")
	return b.String()
}
