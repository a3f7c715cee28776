package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/codetype/internal/diff"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/render"
	"github.com/verte-zerg/codetype/internal/score"
	"github.com/verte-zerg/codetype/internal/snippetfile"
)

var (
	scoreTarget   string
	scoreTyped    string
	scoreDuration float64
	scoreFormat   string
	scoreNoDiff   bool
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a typed transcript against a target snippet",
		Args:  cobra.NoArgs,
		RunE:  runScoreCmd,
	}
	cmd.Flags().StringVar(&scoreTarget, "target", "", "target snippet file ('-' for stdin)")
	cmd.Flags().StringVar(&scoreTyped, "typed", "", "typed transcript file ('-' for stdin)")
	cmd.Flags().Float64Var(&scoreDuration, "duration", 0, "typing time in seconds")
	cmd.Flags().StringVar(&scoreFormat, "format", render.FormatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&scoreNoDiff, "no-diff", false, "omit the line diff")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("typed")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	if scoreTarget == "-" && scoreTyped == "-" {
		return fmt.Errorf("--target and --typed cannot both read stdin")
	}
	if scoreDuration <= 0 || math.IsNaN(scoreDuration) || math.IsInf(scoreDuration, 0) {
		return fmt.Errorf("--duration must be a positive number of seconds")
	}
	target, err := snippetfile.LoadSnippet(scoreTarget)
	if err != nil {
		return fmt.Errorf("failed to read target: %w", err)
	}
	typed, err := snippetfile.Load(scoreTyped)
	if err != nil {
		return fmt.Errorf("failed to read typed text: %w", err)
	}

	metrics, err := score.Score(target, typed, scoreDuration)
	if err != nil {
		return err
	}
	var report []model.DiffLine
	if !scoreNoDiff {
		report = diff.Report(target, typed)
	}
	out := cmd.OutOrStdout()
	if err := render.Encode(out, scoreFormat, render.NewResult(metrics, report), render.ShouldUseColor(out)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
