package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nstehr/vanguard/vanguard-core/combat"
	"github.com/nstehr/vanguard/vanguard-core/config"
	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

var orderCmd = &cobra.Command{
	Use:   "order [skill-id...]",
	Short: "Print the evaluation order of a skillbar",
	Long: `Order resolves up to eight skill ids against the catalog and prints the
order the combat engine will evaluate them in, including custom tiers from the
configuration. Use 0 for an empty slot.`,
	Args: cobra.RangeArgs(1, combat.SlotCount),
	RunE: runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	catalog, err := skills.LoadFile(cfg.SkillsFile)
	if err != nil {
		return err
	}

	var bar [combat.SlotCount]model.SlotState
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id < 0 {
			return fmt.Errorf("invalid skill id %q", arg)
		}
		bar[i] = model.SlotState{SkillID: id}
	}

	registry := combat.NewRegistry(catalog)
	registry.Rebuild(bar)
	orderer, err := combat.NewOrderer(cfg.CustomTiers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for rank, idx := range orderer.Order(registry.Slots()) {
		slot := registry.Slot(idx)
		switch {
		case slot.Empty():
			fmt.Fprintf(out, "%d. slot %d: (empty)\n", rank+1, idx+1)
		case !slot.Known:
			fmt.Fprintf(out, "%d. slot %d: skill %d (not in catalog)\n", rank+1, idx+1, slot.SkillID)
		default:
			sk := slot.Skill
			fmt.Fprintf(out, "%d. slot %d: %s [nature=%s type=%s target=%s]\n",
				rank+1, idx+1, sk.Name, orNone(string(sk.Nature)), orNone(string(sk.Type())), orNone(string(sk.TargetAllegiance)))
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
