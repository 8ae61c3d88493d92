package queuemailercmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.lumeweb.com/queuemailer/core"
)

type emailFlags struct {
	template string
	language string
	params   []string
	to       string
	subject  string
	body     string
	from     string
}

func (f *emailFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "stored template name")
	cmd.Flags().StringVarP(&f.language, "lang", "l", "", "template language (default: core.mail.default_language)")
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "template parameter as key=value, repeatable")
	cmd.Flags().StringVar(&f.to, "to", "", "recipient address")
	cmd.Flags().StringVar(&f.subject, "subject", "", "subject, when not using a template")
	cmd.Flags().StringVar(&f.body, "body", "", "body, when not using a template")
	cmd.Flags().StringVar(&f.from, "from", "", "sender override, when not using a template")

	_ = cmd.MarkFlagRequired("to")
}

func (f *emailFlags) prepare(a *app) (*core.Email, error) {
	if f.template == "" {
		if f.subject == "" && f.body == "" {
			return nil, errors.New("either --template or --subject/--body is required")
		}
		return a.mailer.PrepareEmail(f.to, f.subject, f.body, f.from)
	}

	params, err := parseParams(f.params)
	if err != nil {
		return nil, err
	}

	return a.mailer.PrepareEmailFromTemplate(a.ctx, f.template, f.to, params, f.language)
}

func (c *cli) newPreviewCmd() *cobra.Command {
	flags := &emailFlags{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render an email and print it as an RFC 5322 message without staging it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func(a *app) error {
				email, err := flags.prepare(a)
				if err != nil {
					return err
				}

				msg, err := email.ToMessage()
				if err != nil {
					return err
				}

				_, err = msg.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}
	flags.register(cmd)

	return cmd
}

func (c *cli) newStageCmd() *cobra.Command {
	flags := &emailFlags{}

	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Render an email, stage it and commit the outbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func(a *app) error {
				email, err := flags.prepare(a)
				if err != nil {
					return err
				}

				if err := a.mailer.Send(a.ctx, email); err != nil {
					return err
				}

				if _, err := a.outbox.Flush(a.ctx); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), email.ID().String())
				return nil
			})
		},
	}
	flags.register(cmd)

	return cmd
}
