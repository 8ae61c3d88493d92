package queuemailercmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.lumeweb.com/queuemailer/core"
)

type cli struct {
	configFile  string
	trapSignals bool
}

func newRootCmd(trapSignals bool) *cobra.Command {
	c := &cli{trapSignals: trapSignals}

	rootCmd := &cobra.Command{
		Use:          "queuemailer",
		Short:        "Render stored email templates and stage the results in the outbox",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "config file (default: search the standard locations)")

	rootCmd.AddCommand(
		c.newMigrateCmd(),
		c.newTemplatesCmd(),
		c.newPreviewCmd(),
		c.newStageCmd(),
	)

	return rootCmd
}

// run bootstraps the app for a single command and always runs the exit hooks afterwards.
func (c *cli) run(fn func(a *app) error) (err error) {
	a, err := bootstrap(c.configFile)
	if err != nil {
		return err
	}

	if c.trapSignals {
		trapSignals(a)
	}

	defer func() {
		if exitErr := a.shutdown(); err == nil {
			err = exitErr
		}
	}()

	return fn(a)
}

func (c *cli) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func(a *app) error {
				a.ctx.Logger().Info("database migrated")
				return nil
			})
		},
	}
}

func parseParams(pairs []string) (core.MailerTemplateData, error) {
	params := make(core.MailerTemplateData, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}

	return params, nil
}
