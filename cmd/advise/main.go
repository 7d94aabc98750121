// Package main provides a one-shot CLI that runs the advisor against scenario files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/gigaverse-labs/advisor/internal/advisor"
	"github.com/gigaverse-labs/advisor/internal/config"
	"github.com/gigaverse-labs/advisor/internal/observability"
	"github.com/gigaverse-labs/advisor/internal/scenario"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "", "scenario YAML file, or a directory of them")
	strategy := flag.String("strategy", "", "loot strategy override (balanced, aggressive, defensive, focused)")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatal("-scenario is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	defaultStrategy, err := cfg.Advisor.Strategy()
	if err != nil {
		logger.Fatal("resolving default strategy", zap.Error(err))
	}

	scenarios, err := loadScenarios(*scenarioPath)
	if err != nil {
		logger.Fatal("loading scenarios", zap.Error(err))
	}

	svc := advisor.New(cfg.Advisor.Params(), defaultStrategy, nil, logger)
	for _, s := range scenarios {
		if err := run(context.Background(), os.Stdout, svc, s, *strategy); err != nil {
			logger.Fatal("advising scenario", zap.String("scenario", s.Name), zap.Error(err))
		}
	}
}

func loadScenarios(path string) ([]*scenario.Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return scenario.LoadDir(path)
	}
	s, err := scenario.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []*scenario.Scenario{s}, nil
}

// run prints the move recommendation, the ranked evaluations, and, when the
// scenario offers loot, the loot recommendation. override wins over the
// scenario's own strategy.
func run(ctx context.Context, w io.Writer, svc *advisor.Service, s *scenario.Scenario, override string) error {
	move, err := svc.RecommendMove(ctx, s.Snapshot)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "== %s ==\n", s.Name)
	fmt.Fprintln(w, move.Explanation)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MOVE\tEV\tEXHAUSTS\tWINS")
	for _, e := range move.Decision.All {
		fmt.Fprintf(tw, "%s\t%.2f\t%t\t%t\n", e.Move.Name(), e.ExpectedValue, e.WouldExhaustCharges, e.GuaranteesVictory)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Loot) == 0 {
		return nil
	}
	name := s.Strategy
	if override != "" {
		name = override
	}
	pick, err := svc.RecommendLoot(ctx, s.Loot, s.Snapshot, name)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, pick.Explanation)
	return nil
}
