package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// configTemplate is rendered by `config init`. The API key deliberately
// stays out of the file; it is read from the environment at runtime.
const configTemplate = `version: "1"

modules:
  gateway.http:
    bind: %q
    rate_limit:
      window: 1m
      max_requests: %s

  provider.openai:
    api_key: ${OPENAI_API_KEY}
    model: %q

  search.duckduckgo: {}

  stats.sqlite: {}

  cron.scheduler: {}

  telemetry.otlp: {}
`

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Interactively generate a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := "axtarchat.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			bind := "127.0.0.1:8080"
			model := "gpt-3.5-turbo"
			maxRequests := "15"

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Bind address").
						Description("host:port the HTTP gateway listens on").
						Value(&bind),
					huh.NewInput().
						Title("OpenAI model").
						Value(&model),
					huh.NewInput().
						Title("Requests per minute per client").
						Validate(func(s string) error {
							n, err := strconv.Atoi(s)
							if err != nil || n <= 0 {
								return fmt.Errorf("enter a positive number")
							}
							return nil
						}).
						Value(&maxRequests),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("refusing to overwrite existing %s", path)
			}

			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}

			content := fmt.Sprintf(configTemplate, bind, maxRequests, model)
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\nSet OPENAI_API_KEY in the environment before starting.\n", path)
			return nil
		},
	}
}
