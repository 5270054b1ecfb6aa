package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"softsell-api/internal/config"
	"softsell-api/internal/llm"
	"softsell-api/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		model   string
		driver  string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "cli_chat",
		Short: "Chat with the SoftSell assistant from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.LoadChatConfig()
			if err != nil {
				return err
			}
			if model != "" {
				cfg.LLMModel = model
			}
			if driver != "" {
				cfg.LLMDriver = driver
			}

			logger := zap.NewNop()
			if verbose {
				logger, _ = zap.NewDevelopment()
			}
			defer logger.Sync()

			client, err := llm.New(cfg.LLMDriver, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, zap.NewStdLog(logger))
			if err != nil {
				return err
			}

			conv := service.NewConversation(logger, client, cfg.LLMModel)
			return runREPL(cmd.Context(), conv, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "override LLM_MODEL")
	cmd.Flags().StringVar(&driver, "driver", "", "override LLM_DRIVER (sdk|http)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log provider failures")
	return cmd
}

// runREPL lee lineas hasta EOF o /quit. "/q N" envia la pregunta sugerida N.
func runREPL(ctx context.Context, conv *service.Conversation, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	questions := service.SuggestedQuestions()

	printTurn(out, "SoftSell", conv.Transcript()[0].Text)
	fmt.Fprintln(out, "Suggested questions:")
	for i, q := range questions {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, q)
	}
	fmt.Fprintln(out, "Type a message, /q N for a suggested question, or /quit.")

	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)

		if line != "" {
			if line == "/quit" {
				return nil
			}
			if err := handleLine(ctx, conv, questions, line, out); err != nil {
				fmt.Fprintln(out, err)
			}
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func handleLine(ctx context.Context, conv *service.Conversation, questions []string, line string, out io.Writer) error {
	if rest, ok := strings.CutPrefix(line, "/q "); ok {
		idx, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || idx < 1 || idx > len(questions) {
			return fmt.Errorf("pick a question between 1 and %d", len(questions))
		}
		fmt.Fprintf(out, "You: %s\n", questions[idx-1])
		reply, err := conv.SubmitSuggestedQuestion(ctx, questions[idx-1])
		if err != nil {
			return err
		}
		printTurn(out, "SoftSell", reply.Text)
		return nil
	}

	reply, err := conv.SubmitUserMessage(ctx, line)
	if err != nil {
		return err
	}
	printTurn(out, "SoftSell", reply.Text)
	return nil
}

func printTurn(out io.Writer, who, text string) {
	fmt.Fprintf(out, "%s: %s\n", who, text)
}
