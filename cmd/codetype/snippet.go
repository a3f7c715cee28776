package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/render"
	"github.com/verte-zerg/codetype/internal/snippetfile"
)

const previewWidth = 40

var (
	snippetAddLang  string
	snippetListLang string
)

func newSnippetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Manage user snippets",
	}

	addCmd := &cobra.Command{
		Use:   "add FILE",
		Short: "Store a snippet from a file ('-' for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnippetAddCmd,
	}
	addCmd.Flags().StringVar(&snippetAddLang, "lang", "", "snippet language (default: from file extension)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snippets",
		Args:  cobra.NoArgs,
		RunE:  runSnippetListCmd,
	}
	listCmd.Flags().StringVar(&snippetListLang, "lang", "", "language filter")

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a stored snippet",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnippetRmCmd,
	}

	cmd.AddCommand(addCmd, listCmd, rmCmd)
	return cmd
}

func runSnippetAddCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	lang := model.Language(strings.TrimSpace(snippetAddLang))
	if lang == "" {
		detected, ok := snippetfile.LangFromPath(path)
		if !ok {
			return fmt.Errorf("--lang is required: cannot detect language of %s", path)
		}
		lang = detected
	}
	text, err := snippetfile.LoadSnippet(path)
	if err != nil {
		return fmt.Errorf("failed to read snippet: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	added, err := st.AddSnippet(cmd.Context(), lang, text)
	if err != nil {
		return fmt.Errorf("failed to store snippet: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), added.ID); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logErrf("Added %s snippet (%d lines)\n", added.Lang, strings.Count(added.Text, "\n")+1)
	return nil
}

func runSnippetListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	snippets, err := st.ListSnippets(cmd.Context(), snippetListLang)
	if err != nil {
		return fmt.Errorf("failed to list snippets: %w", err)
	}
	if len(snippets) == 0 {
		logErrln("No stored snippets. Add one with: codetype snippet add FILE")
		return nil
	}
	rows := make([][]string, 0, len(snippets))
	for _, s := range snippets {
		rows = append(rows, []string{
			s.ID,
			string(s.Lang),
			s.CreatedAt.Local().Format(time.DateTime),
			preview(s.Text),
		})
	}
	if err := render.Table(cmd.OutOrStdout(), []string{"ID", "Language", "Added", "Preview"}, rows, nil); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runSnippetRmCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.DeleteSnippet(cmd.Context(), strings.TrimSpace(args[0])); err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	return nil
}

// preview returns the first line of text, shortened to previewWidth runes.
func preview(text string) string {
	line, _, more := strings.Cut(strings.TrimSpace(text), "\n")
	runes := []rune(line)
	if len(runes) > previewWidth {
		return string(runes[:previewWidth-1]) + "…"
	}
	if more {
		return line + " …"
	}
	return line
}
