package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/san-kum/mandel/internal/automation"
	"github.com/san-kum/mandel/internal/config"
)

func renderStep(cfg *config.Config) error {
	_, err := renderFile(cfg)
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return withExit(exitBadArgs, fmt.Errorf("failed to load scenario: %w", err))
	}

	base, err := buildConfig(cmd, args[1:])
	if err != nil {
		return withExit(exitBadArgs, err)
	}

	outputs, err := automation.RunScenario(cmd.Context(), sc, base, renderStep)
	printOutputs(cmd, outputs)
	if err != nil {
		return withExit(exitCode(err), err)
	}
	return nil
}

func printOutputs(cmd *cobra.Command, outputs []string) {
	for _, path := range outputs {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
}

func runArea(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return withExit(exitBadArgs, err)
	}
	if err := cfg.Validate(); err != nil {
		return withExit(exitBadArgs, err)
	}

	res, err := automation.RunMonteCarlo(cmd.Context(), automation.MonteCarloConfig{
		Kind:          cfg.Kind(),
		MaxIterations: cfg.Color.MaxIterations,
		Samples:       samples,
		Seed:          seed,
	})
	if err != nil {
		return withExit(exitBadArgs, err)
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(cmd.OutOrStdout(), "%s: area %.5f ± %.5f (%d of %d samples inside)\n",
		cfg.Kind(), res.Area, res.StdErr, res.Inside, res.Samples)
	return nil
}
