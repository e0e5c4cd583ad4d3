package main

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rollhouse/internal/engine"
	"rollhouse/internal/games"
	"rollhouse/internal/games/craps"
	"rollhouse/internal/games/sumroll"
)

// betSpec is one bet the simulated player keeps on the table,
// re-placed whenever its slot is empty and the phase admits it.
type betSpec struct {
	kind engine.BetKind
	aux  uint8
}

type tally struct {
	placed   uint64
	wagered  uint64
	returned uint64
}

// kindsByName builds a reverse lookup over the catalog's bet surface.
func kindsByName(cat engine.Catalog) map[string]engine.BetKind {
	byName := make(map[string]engine.BetKind)
	for k := 0; k < 256; k++ {
		if name := cat.KindName(engine.BetKind(k)); name != "" {
			byName[name] = engine.BetKind(k)
		}
	}
	return byName
}

func parseBetSpec(cat engine.Catalog, s string) (betSpec, error) {
	name, auxPart, hasAux := strings.Cut(s, ":")

	var spec betSpec
	if kind, ok := kindsByName(cat)[name]; ok {
		spec.kind = kind
	} else if n, err := strconv.ParseUint(name, 10, 8); err == nil {
		spec.kind = engine.BetKind(n)
	} else {
		return spec, fmt.Errorf("unknown bet kind %q", name)
	}

	if hasAux {
		n, err := strconv.ParseUint(auxPart, 10, 8)
		if err != nil {
			return spec, fmt.Errorf("bad aux in %q: %w", s, err)
		}
		spec.aux = uint8(n)
	}
	return spec, nil
}

func specLabel(cat engine.Catalog, spec betSpec) string {
	name := cat.KindName(spec.kind)
	if name == "" {
		name = fmt.Sprintf("kind_%d", spec.kind)
	}
	if spec.aux != 0 {
		return fmt.Sprintf("%s:%d", name, spec.aux)
	}
	return name
}

// runSimulation drives the real placement and settlement path over
// synthetic rounds with rng-sealed seeds, so the reported return rates
// come from the same code the service settles with.
func runSimulation(cat engine.Catalog, specs []betSpec, rounds int, stake uint64, seed int64) (map[betSpec]*tally, error) {
	rng := rand.New(rand.NewSource(seed))

	g := &engine.Game{ID: cat.ID(), Epoch: 1, Bankroll: 1 << 62}
	p := &engine.Position{Game: cat.ID(), Player: "sim", Epoch: 1, State: engine.StateOpen}

	tallies := make(map[betSpec]*tally, len(specs))
	for _, spec := range specs {
		tallies[spec] = &tally{}
	}

	for i := 1; i <= rounds; i++ {
		openedAt := int64(i)
		r := &engine.Round{ID: uint64(i), OpenedAt: openedAt, ExpiresAt: openedAt + 3600}

		for _, spec := range specs {
			if p.Stake(spec.kind, spec.aux) > 0 {
				continue
			}
			if _, err := engine.PlaceBet(g, p, cat, r, spec.kind, spec.aux, stake); err != nil {
				// Phase-gated bets (line bets mid-epoch, odds
				// without a point) simply sit this round out.
				continue
			}
			t := tallies[spec]
			t.placed++
			t.wagered += stake
		}

		if cat.RequiresDeal() && p.HasBets() {
			if err := engine.Deal(p, cat, r); err != nil {
				return nil, err
			}
		}

		var seed32 [32]byte
		rng.Read(seed32[:])
		r.Seal(seed32)

		res, err := engine.Settle(g, p, cat, r, openedAt)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		for _, rb := range res.Resolved {
			if t, ok := tallies[betSpec{kind: rb.Kind, aux: rb.Aux}]; ok {
				t.returned += rb.Paid
			}
		}

		// Winnings must be claimed before the next round admits bets.
		if p.Pending > 0 {
			if _, err := engine.Claim(p); err != nil {
				return nil, fmt.Errorf("round %d claim: %w", i, err)
			}
		}
	}
	return tallies, nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate return-to-player rates offline over many rounds",
	Long: `Runs a flat-betting player through the settlement engine with
rng-generated round seeds and reports the realized return per bet kind.
Bets are named as kind[:aux], e.g. pass_line, place:6, hardway:8, yes:5.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		game, _ := cmd.Flags().GetString("game")
		rounds, _ := cmd.Flags().GetInt("rounds")
		stake, _ := cmd.Flags().GetUint64("stake")
		seed, _ := cmd.Flags().GetInt64("seed")
		betFlags, _ := cmd.Flags().GetStringArray("bet")

		games.Register(craps.New())
		games.Register(sumroll.New())
		cat, err := games.Get(engine.GameID(game))
		if err != nil {
			return err
		}
		if len(betFlags) == 0 {
			return fmt.Errorf("at least one --bet is required")
		}

		specs := make([]betSpec, 0, len(betFlags))
		for _, s := range betFlags {
			spec, err := parseBetSpec(cat, s)
			if err != nil {
				return err
			}
			specs = append(specs, spec)
		}

		tallies, err := runSimulation(cat, specs, rounds, stake, seed)
		if err != nil {
			return err
		}

		sort.Slice(specs, func(i, j int) bool {
			if specs[i].kind != specs[j].kind {
				return specs[i].kind < specs[j].kind
			}
			return specs[i].aux < specs[j].aux
		})

		fmt.Printf("simulated %d rounds of %s (stake %d, seed %d)\n\n", rounds, game, stake, seed)
		fmt.Printf("%-16s %10s %14s %14s %8s %8s\n", "BET", "PLACED", "WAGERED", "RETURNED", "RTP", "EDGE")

		var wagered, returned uint64
		for _, spec := range specs {
			t := tallies[spec]
			wagered += t.wagered
			returned += t.returned
			fmt.Printf("%-16s %10d %14d %14d %7.2f%% %7.2f%%\n",
				specLabel(cat, spec), t.placed, t.wagered, t.returned, rtp(t), 100-rtp(t))
		}
		if len(specs) > 1 {
			total := &tally{wagered: wagered, returned: returned}
			fmt.Printf("%-16s %10s %14d %14d %7.2f%% %7.2f%%\n",
				"overall", "", wagered, returned, rtp(total), 100-rtp(total))
		}
		return nil
	},
}

func rtp(t *tally) float64 {
	if t.wagered == 0 {
		return 0
	}
	return float64(t.returned) / float64(t.wagered) * 100
}

func init() {
	simulateCmd.Flags().String("game", "craps", "game id")
	simulateCmd.Flags().Int("rounds", 100000, "rounds to simulate")
	simulateCmd.Flags().Uint64("stake", 100, "flat stake per bet")
	simulateCmd.Flags().Int64("seed", 1, "rng seed")
	simulateCmd.Flags().StringArray("bet", nil, "bet to keep on the table, kind[:aux] (repeatable)")
}
