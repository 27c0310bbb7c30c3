package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zen-systems/pollgate/pkg/adapter"
	"github.com/zen-systems/pollgate/pkg/config"
	"github.com/zen-systems/pollgate/pkg/poll"
	"github.com/zen-systems/pollgate/pkg/server"
	"github.com/zen-systems/pollgate/pkg/service"
)

var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "pollgate",
		Short: "LLM-backed poll answering service",
		Long: `Pollgate answers poll and survey questions through an LLM provider
and post-processes the replies so they read like a somewhat uncertain
human respondent rather than a confident machine.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			return config.InitLogger(cfg.Log)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(answerCmd())
	rootCmd.AddCommand(providersCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != 0 {
				cfg.Server.Port = port
			}

			svc, err := service.New(cfg)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			srv := &http.Server{
				Addr:    addr,
				Handler: server.New(svc).Router(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				zap.L().Info("listening", zap.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return eris.Wrap(err, "server failed")
			case <-ctx.Done():
			}

			zap.L().Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return eris.Wrap(err, "shutdown failed")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")

	return cmd
}

// answerCmd runs one batch from a file or stdin and prints the JSON result.
func answerCmd() *cobra.Command {
	var inputFile string
	var contextFlag string
	var mockFlag bool

	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Answer a batch of questions from a file or stdin",
		Long: `Reads a JSON document with the questions to answer, either a bare
array of questions or an object of the form:

  {"questions": [...], "context": "optional shared context"}

and prints the answers and run statistics as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(inputFile)
			if err != nil {
				return err
			}

			questions, sharedContext, err := decodeQuestions(data)
			if err != nil {
				return err
			}
			if contextFlag != "" {
				sharedContext = contextFlag
			}

			var svc *service.Service
			if mockFlag {
				svc = service.NewWithProvider(adapter.NewMockAdapter(), cfg.Seed)
			} else {
				svc, err = service.New(cfg)
				if err != nil {
					return err
				}
			}

			answers, stats, err := svc.AnswerQuestions(cmd.Context(), questions, sharedContext)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(map[string]any{
				"answers": answers,
				"stats":   stats,
			}, "", "  ")
			if err != nil {
				return eris.Wrap(err, "encode result")
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "questions JSON file (defaults to stdin)")
	cmd.Flags().StringVar(&contextFlag, "context", "", "shared context passed with every question")
	cmd.Flags().BoolVar(&mockFlag, "mock", false, "use the mock provider instead of a real one")

	return cmd
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List providers, models, and credential status",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODEL\tSTATUS")
			fmt.Fprintf(w, "openai\t%s\t%s\n", cfg.OpenAIModel, keyStatus(cfg.OpenAIAPIKey))
			fmt.Fprintf(w, "anthropic\t%s\t%s\n", cfg.AnthropicModel, keyStatus(cfg.AnthropicAPIKey))
			return w.Flush()
		},
	}
}

func keyStatus(apiKey string) string {
	if apiKey != "" {
		return "ready"
	}
	return "no key"
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, eris.Wrap(err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// decodeQuestions accepts either a bare question array or an object carrying
// questions plus optional shared context.
func decodeQuestions(data []byte) ([]poll.Question, string, error) {
	var doc struct {
		Questions []poll.Question `json:"questions"`
		Context   string          `json:"context"`
	}
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Questions) > 0 {
		return doc.Questions, doc.Context, nil
	}

	var questions []poll.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, "", eris.Wrap(err, "decode questions")
	}
	if len(questions) == 0 {
		return nil, "", errors.New("no questions provided")
	}
	return questions, "", nil
}
