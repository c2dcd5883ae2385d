package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/macsweep/internal/analyzer"
	"github.com/blackwell-systems/macsweep/internal/output"
)

var (
	recommendSeverity string

	recommendCmd = &cobra.Command{
		Use:   "recommend",
		Short: "Show cleanup recommendations",
		Long: `Evaluate every scanned package against the cleanup rules and show what
can be removed, ordered by confidence:

  safe     orphaned Homebrew dependencies nothing requires anymore
  review   unused beyond the review window, or large with no usage data
  warning  unused beyond the warning window; check before removing

Thresholds come from ~/.macsweep/config.yaml (recommend.review-days,
recommend.warning-days, recommend.never-used-min-bytes).`,
		Example: `  # All recommendations
  macsweep recommend

  # Only items safe to remove outright
  macsweep recommend --severity safe`,
		RunE: runRecommend,
	}
)

func init() {
	recommendCmd.Flags().StringVar(&recommendSeverity, "severity", "", "filter by severity (safe, review, warning)")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	recs, err := generateRecommendations()
	if err != nil {
		return err
	}

	if recommendSeverity != "" {
		sev, ok := analyzer.ParseSeverity(recommendSeverity)
		if !ok {
			return fmt.Errorf("unknown severity %q (want safe, review or warning)", recommendSeverity)
		}
		recs = filterBySeverity(recs, sev)
	}

	fmt.Print(output.RenderRecommendationTable(recs))
	return nil
}

// generateRecommendations loads stored packages and runs the engine over
// them with the configured thresholds and the current orphan set.
func generateRecommendations() ([]analyzer.Recommendation, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	db, err := openStore()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	pkgs, err := db.ListPackages()
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages in database; run 'macsweep scan' first")
	}

	engine := analyzer.NewEngine(thresholds(settings))
	return engine.Generate(pkgs, orphanNames(), time.Now()), nil
}

func filterBySeverity(recs []analyzer.Recommendation, sev analyzer.Severity) []analyzer.Recommendation {
	var filtered []analyzer.Recommendation
	for _, rec := range recs {
		if rec.Severity == sev {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
