package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"henna-assistant-be/pkg/ai/router"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	userColor   = color.New(color.FgYellow, color.Bold)
	faqColor    = color.New(color.FgCyan)
	aiColor     = color.New(color.FgGreen)
	noticeColor = color.New(color.FgMagenta)
	errorColor  = color.New(color.FgRed)
)

func newAskCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.core.NewRouter()
			reply := r.Process(cmd.Context(), strings.Join(args, " "))
			printReply(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}

func newReplCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Chat interactively (/reset starts over, /quit exits)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.repl(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func (a *app) repl(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	ctx := cmd.Context()
	ag := a.core.NewAgent()
	r := router.NewQueryRouter(a.core.Matcher, ag, a.log)

	noticeColor.Fprintln(out, "🌿 Ask me anything about henna, packages, or booking...")
	scanner := bufio.NewScanner(in)
	for {
		userColor.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			if err := ag.Configure(ctx); err != nil {
				errorColor.Fprintf(out, "Could not start over: %v\n", err)
				continue
			}
			noticeColor.Fprintln(out, "Conversation restarted.")
			continue
		}
		printReply(out, r.Process(ctx, line))
		if ctx.Err() != nil {
			return nil
		}
	}
	return scanner.Err()
}

func printReply(out io.Writer, reply router.Reply) {
	switch reply.Source {
	case router.SourceFAQ:
		faqColor.Fprintln(out, reply.Text)
	case router.SourceAI:
		if !reply.Result.OK() {
			errorColor.Fprintln(out, reply.Text)
			return
		}
		aiColor.Fprintln(out, reply.Text)
	default:
		noticeColor.Fprintln(out, reply.Text)
	}
	fmt.Fprintln(out)
}
