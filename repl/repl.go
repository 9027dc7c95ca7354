// Package repl is an interactive shell that truecases each entered line.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/truecase/annotate"
	"github.com/revelaction/truecase/render"
	sent "github.com/revelaction/truecase/sentence"
)

const (
	// commandPrefix starts a shell command instead of text
	commandPrefix = ":"

	quit = "quit"
)

type Handler struct {
	Annotator annotate.Annotator
	Config    annotate.Config
	Out       io.Writer

	// ShowStates prints the per token truecase lines after the sentence
	ShowStates bool
}

func NewHandler(a annotate.Annotator, cfg annotate.Config, out io.Writer) *Handler {
	return &Handler{Annotator: a, Config: cfg, Out: out, ShowStates: true}
}

func (h *Handler) Run(ctx context.Context) error {

	fmt.Fprintln(h.Out, "🔑 type lowercase text, :states toggles token states, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("truecase repl"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)

		in = strings.TrimSpace(in)
		if in == quit || in == "exit" {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if in == "" {
			continue
		}

		history = append(history, in)
		if err := h.Line(ctx, in); err != nil {
			fmt.Fprintf(h.Out, "✍  error: %v\n", err)
		}
	}
}

// Line handles one line of input: either a shell command or text to
// truecase.
func (h *Handler) Line(ctx context.Context, in string) error {
	if strings.HasPrefix(in, commandPrefix) {
		return h.command(strings.TrimPrefix(in, commandPrefix))
	}

	doc, err := h.Annotator.Annotate(ctx, annotate.Lower(in, h.Config.Language))
	if err != nil {
		return err
	}

	fmt.Fprintf(h.Out, "✍  %s\n", strings.Join(doc.Words(sent.FieldTrueCaseText), " "))

	if h.ShowStates {
		return render.NewTextRenderer(h.Out).TrueCase(doc)
	}

	return nil
}

func (h *Handler) command(cmd string) error {
	switch cmd {
	case "annotators":
		fmt.Fprintf(h.Out, "📖 %s\n", h.Config.String())
	case "states":
		h.ShowStates = !h.ShowStates
		fmt.Fprintf(h.Out, "States set to %t\n", h.ShowStates)
	case "stages":
		fmt.Fprintf(h.Out, "📖 %s\n", strings.Join(annotate.Stages(), " "))
	default:
		return fmt.Errorf("unknown command %q", commandPrefix+cmd)
	}
	return nil
}

func (h *Handler) completer(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursor()
	if !strings.HasPrefix(word, commandPrefix) {
		return []prompt.Suggest{}
	}

	s := []prompt.Suggest{
		{Text: ":annotators", Description: "show the pipeline stages in use"},
		{Text: ":stages", Description: "show the known stages"},
		{Text: ":states", Description: "toggle the per token state lines"},
		{Text: quit, Description: "leave the shell"},
	}
	return prompt.FilterHasPrefix(s, word, true)
}
