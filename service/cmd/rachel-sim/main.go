// Command rachel-sim plays batches of all-AI Rachel games and prints a summary.
//
// Settings come from the environment or a .env file; see internal/config.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/rachel/engine"
	"github.com/jason-s-yu/rachel/service/internal/config"
	"github.com/jason-s-yu/rachel/service/internal/game"
)

// result is the outcome of one simulated game.
type result struct {
	Seed    uint32
	Winner  int // seat that went out first, -1 if nobody did
	Loser   int // seat left holding cards, -1 if stalled with several
	Turns   int
	Stalled bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := engine.SelfTest(); err != nil {
		pterm.Error.Printfln("engine self-test failed: %v", err)
		os.Exit(1)
	}

	seed := "random"
	if cfg.Seed != 0 {
		seed = fmt.Sprint(cfg.Seed)
	}
	pterm.DefaultSection.Printfln("Rachel %s: %d games, %d players, ultimate=%v, seed=%s",
		engine.Version, cfg.Games, cfg.Players, cfg.Ultimate, seed)

	results, err := runBatch(cfg)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(gameTable(results)).Render(); err != nil {
		pterm.Error.Println(err)
	}
	pterm.Println()
	if err := pterm.DefaultTable.WithHasHeader().WithData(seatTable(results, cfg.Players)).Render(); err != nil {
		pterm.Error.Println(err)
	}

	stalled := 0
	for _, r := range results {
		if r.Stalled {
			stalled++
		}
	}
	if stalled > 0 {
		pterm.Warning.Printfln("%d of %d games stalled", stalled, len(results))
	} else {
		pterm.Success.Printfln("All %d games finished", len(results))
	}
}

// runBatch plays cfg.Games games, game i seeded with cfg.Seed+i, or randomly
// when no seed is configured.
func runBatch(cfg config.Config) ([]result, error) {
	results := make([]result, 0, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		r, err := runGame(cfg, i)
		if err != nil {
			return results, fmt.Errorf("game %d: %w", i, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// runGame plays a single all-AI game to the end.
func runGame(cfg config.Config, i int) (result, error) {
	g := game.NewRachelGame(cfg.Rules(i))

	seats := make(map[uuid.UUID]int, cfg.Players)
	for s := 0; s < cfg.Players; s++ {
		id, err := g.AddPlayer(fmt.Sprintf("Bot %d", s+1), true)
		if err != nil {
			return result{}, err
		}
		seats[id] = s
	}

	var standings []uuid.UUID
	g.OnGameEnd = func(_ uuid.UUID, s []uuid.UUID) { standings = s }

	if err := g.Start(); err != nil {
		return result{}, err
	}

	r := result{Seed: g.Rules.Seed, Winner: -1, Loser: -1, Turns: g.Engine.TurnCount, Stalled: g.Stalled}
	if len(standings) > 0 {
		if g.Engine.Players[seats[standings[0]]].IsOut {
			r.Winner = seats[standings[0]]
		}
		if !r.Stalled {
			r.Loser = seats[standings[len(standings)-1]]
		}
	}
	return r, nil
}

// gameTable lays out one row per game.
func gameTable(results []result) pterm.TableData {
	data := pterm.TableData{{"Game", "Seed", "Winner", "Loser", "Turns", "Outcome"}}
	for i, r := range results {
		outcome := pterm.Green("finished")
		if r.Stalled {
			outcome = pterm.Yellow("stalled")
		}
		data = append(data, []string{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Seed),
			seatName(r.Winner),
			seatName(r.Loser),
			fmt.Sprint(r.Turns),
			outcome,
		})
	}
	return data
}

// seatTable tallies wins and losses per seat.
func seatTable(results []result, players int) pterm.TableData {
	wins := make([]int, players)
	losses := make([]int, players)
	for _, r := range results {
		if r.Winner >= 0 {
			wins[r.Winner]++
		}
		if r.Loser >= 0 {
			losses[r.Loser]++
		}
	}
	data := pterm.TableData{{"Seat", "Wins", "Losses"}}
	for s := 0; s < players; s++ {
		data = append(data, []string{seatName(s), fmt.Sprint(wins[s]), fmt.Sprint(losses[s])})
	}
	return data
}

func seatName(seat int) string {
	if seat < 0 {
		return "-"
	}
	return fmt.Sprintf("Bot %d", seat+1)
}
