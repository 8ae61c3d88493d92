package queuemailercmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.lumeweb.com/queuemailer/core"
	"gopkg.in/yaml.v3"
)

type templateFileEntry struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
	Subject  string `yaml:"subject"`
	Body     string `yaml:"body"`
	From     string `yaml:"from"`
}

func loadTemplateFile(file string) ([]*core.EmailTemplate, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var entries []templateFileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}

	templates := make([]*core.EmailTemplate, 0, len(entries))
	for i, entry := range entries {
		if entry.Name == "" || entry.Language == "" {
			return nil, fmt.Errorf("%s: entry %d needs a name and a language", file, i)
		}

		templates = append(templates, &core.EmailTemplate{
			Name:     entry.Name,
			Language: entry.Language,
			Subject:  entry.Subject,
			Body:     entry.Body,
			From:     entry.From,
		})
	}

	return templates, nil
}

func (c *cli) newTemplatesCmd() *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage stored email templates",
	}

	importCmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Insert or replace templates from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := loadTemplateFile(args[0])
			if err != nil {
				return err
			}

			return c.run(func(a *app) error {
				for _, tpl := range templates {
					if err := a.templates.SaveTemplate(a.ctx, tpl); err != nil {
						return err
					}
				}

				fmt.Fprintf(cmd.OutOrStdout(), "imported %d templates\n", len(templates))
				return nil
			})
		},
	}

	var language string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func(a *app) error {
				templates, err := a.templates.ListTemplates(a.ctx, language)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tLANGUAGE\tSUBJECT\tFROM")
				for _, tpl := range templates {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tpl.Name, tpl.Language, tpl.Subject, tpl.From)
				}
				return w.Flush()
			})
		},
	}
	listCmd.Flags().StringVarP(&language, "language", "l", "", "only list templates in this language")

	templatesCmd.AddCommand(importCmd, listCmd)

	return templatesCmd
}
