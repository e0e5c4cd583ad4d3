package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rollhouse/internal/audit"
	"rollhouse/internal/chain"
	"rollhouse/internal/db"
	"rollhouse/internal/engine"
	"rollhouse/internal/event"
	"rollhouse/internal/games"
	"rollhouse/internal/games/craps"
	"rollhouse/internal/games/sumroll"
	"rollhouse/internal/house"
	"rollhouse/internal/ledger"
	"rollhouse/internal/logger"
	"rollhouse/internal/vault"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "housectl",
	Short: "Operate the rollhouse settlement service",
}

// newService wires the operation layer against the sqlite database
// directly; housectl runs beside the server, not through it.
func newService() *house.Service {
	logger.Init()
	games.Register(craps.New())
	games.Register(sumroll.New())

	database := db.Init(dbPath)
	return house.New(database,
		vault.New(database),
		ledger.New(database),
		audit.New(database),
		event.NewBus(),
		chain.NewLocal(),
		10*time.Minute)
}

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Add operator capital to a game's bankroll",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, _ := cmd.Flags().GetString("game")
		amount, _ := cmd.Flags().GetUint64("amount")

		s := newService()
		if err := s.FundHouse(context.Background(), engine.GameID(game), amount, "housectl"); err != nil {
			return err
		}
		fmt.Printf("funded %s with %d\n", game, amount)
		return nil
	},
}

var forceSettleCmd = &cobra.Command{
	Use:   "force-settle",
	Short: "Forfeit a position stuck on an expired round",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, _ := cmd.Flags().GetString("game")
		player, _ := cmd.Flags().GetString("player")
		round, _ := cmd.Flags().GetUint64("round")

		s := newService()
		res, err := s.ForceSettle(context.Background(), engine.GameID(game), player, round, "housectl")
		if err != nil {
			return err
		}
		fmt.Printf("force-settled %s/%s round %d: forfeited=%d refunded=%d\n",
			game, player, round, res.Forfeited, res.Refunded)
		return nil
	},
}

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "List recent rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		database := db.Init(dbPath)
		rows, err := database.Query(`
		SELECT id, opened_at, expires_at, sealed FROM rounds ORDER BY id DESC LIMIT ?
		`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		fmt.Printf("%-8s %-20s %-20s %s\n", "ID", "OPENED", "EXPIRES", "SEALED")
		for rows.Next() {
			var id uint64
			var opened, expires int64
			var sealed bool
			if err := rows.Scan(&id, &opened, &expires, &sealed); err != nil {
				return err
			}
			fmt.Printf("%-8d %-20s %-20s %v\n", id,
				time.Unix(opened, 0).Format(time.RFC3339),
				time.Unix(expires, 0).Format(time.RFC3339),
				sealed)
		}
		return rows.Err()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "rollhouse.sqlite", "sqlite database path")

	fundCmd.Flags().String("game", "craps", "game id")
	fundCmd.Flags().Uint64("amount", 0, "token units to add")
	fundCmd.MarkFlagRequired("amount")

	forceSettleCmd.Flags().String("game", "craps", "game id")
	forceSettleCmd.Flags().String("player", "", "player id")
	forceSettleCmd.Flags().Uint64("round", 0, "expired round id")
	forceSettleCmd.MarkFlagRequired("player")
	forceSettleCmd.MarkFlagRequired("round")

	roundsCmd.Flags().Int("limit", 20, "rows to list")

	rootCmd.AddCommand(fundCmd, forceSettleCmd, roundsCmd, simulateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
