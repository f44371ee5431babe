package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/bran/ddsolve/cmd/ddsolve/tui"
	"github.com/bran/ddsolve/internal/bench"
	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/dealgen"
	"github.com/bran/ddsolve/internal/game"
	"github.com/bran/ddsolve/internal/notation"
	"github.com/bran/ddsolve/internal/render"
	"github.com/bran/ddsolve/internal/solver"
)

func main() {
	app := &cli.App{
		Name:  "ddsolve",
		Usage: "double-dummy bridge solver",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "compact", Usage: "output format: compact or labeled"},
			&cli.BoolFlag{Name: "trace", Usage: "emit per-node search trace to stderr"},
			&cli.BoolFlag{Name: "stats", Usage: "print TPN table statistics with each result"},
			&cli.IntFlag{Name: "workers", Value: 1, Usage: "parallel solver workers (one TPN table each)"},
			&cli.BoolFlag{Name: "progress", Usage: "show a live Bubble Tea progress gauge while solving"},
			&cli.BoolFlag{Name: "play", Usage: "print only the recommended opening card for each deal"},
		},
		Commands: []*cli.Command{
			{
				Name:      "file",
				Usage:     "solve deals read from a file of \"<trump> <lead_seat> <hands>\" lines",
				ArgsUsage: "<path>",
				Action:    runFile,
			},
			{
				Name:  "random",
				Usage: "solve N randomly generated deals",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Value: 1, Usage: "PRNG seed"},
					&cli.IntFlag{Name: "deals", Value: 1, Usage: "number of deals to generate"},
					&cli.IntFlag{Name: "size", Value: 13, Usage: "cards per hand"},
				},
				Action: runRandom,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ddsolve: %v\n", err)
		os.Exit(1)
	}
}

func runFile(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("file: a path argument is required", 1)
	}
	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("file: %v", err), 1)
	}
	defer f.Close()

	var inputs []bench.DealInput
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		in, err := parseLine(line)
		if err != nil {
			return cli.Exit(fmt.Sprintf("file: line %d: %v", lineNo, err), 1)
		}
		inputs = append(inputs, in)
	}
	if err := scanner.Err(); err != nil {
		return cli.Exit(fmt.Sprintf("file: %v", err), 1)
	}

	return runBatch(c, inputs)
}

// parseLine parses one "<trumps> <lead_seat> <hands>" line (spec §6).
func parseLine(line string) (bench.DealInput, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return bench.DealInput{}, fmt.Errorf("expected 3 fields \"<trumps> <lead_seat> <hands>\", got %d", len(fields))
	}
	trump, err := parseTrump(fields[0])
	if err != nil {
		return bench.DealInput{}, err
	}
	seat, err := parseSeat(fields[1])
	if err != nil {
		return bench.DealInput{}, err
	}
	hands, err := notation.ParseHands(fields[2])
	if err != nil {
		return bench.DealInput{}, err
	}
	return bench.DealInput{Trump: trump, LeadSeat: seat, Hands: hands}, nil
}

func parseTrump(s string) (cards.TrumpSuit, error) {
	switch strings.ToUpper(s) {
	case "NT", "N":
		return cards.NoTrump, nil
	case "C", "CLUBS":
		return cards.Trump(cards.Clubs), nil
	case "D", "DIAMONDS":
		return cards.Trump(cards.Diamonds), nil
	case "H", "HEARTS":
		return cards.Trump(cards.Hearts), nil
	case "S", "SPADES":
		return cards.Trump(cards.Spades), nil
	}
	return cards.NoTrump, fmt.Errorf("unrecognized trump %q", s)
}

func parseSeat(s string) (cards.Seat, error) {
	switch strings.ToUpper(s) {
	case "W", "WEST":
		return cards.West, nil
	case "N", "NORTH":
		return cards.North, nil
	case "E", "EAST":
		return cards.East, nil
	case "S", "SOUTH":
		return cards.South, nil
	}
	return 0, fmt.Errorf("unrecognized seat %q", s)
}

func runRandom(c *cli.Context) error {
	seed := c.Int64("seed")
	n := c.Int("deals")
	size := c.Int("size")

	gen := dealgen.NewGenerator(seed)
	rng := rand.New(rand.NewSource(seed))
	allTrumps := []cards.TrumpSuit{cards.NoTrump, cards.Trump(cards.Clubs), cards.Trump(cards.Diamonds), cards.Trump(cards.Hearts), cards.Trump(cards.Spades)}

	inputs := make([]bench.DealInput, 0, n)
	for i := 0; i < n; i++ {
		hands, err := gen.Deal(size)
		if err != nil {
			return cli.Exit(fmt.Sprintf("random: %v", err), 1)
		}
		trump := allTrumps[rng.Intn(len(allTrumps))]
		lead := cards.Seat(rng.Intn(cards.NumSeats))
		inputs = append(inputs, bench.DealInput{Trump: trump, LeadSeat: lead, Hands: hands})
	}

	return runBatch(c, inputs)
}

func runBatch(c *cli.Context, inputs []bench.DealInput) error {
	cfg := solver.DefaultConfig()
	workers := c.Int("workers")
	theme := render.Default()

	if c.Bool("play") {
		return runBatchPlay(inputs, cfg)
	}

	if c.Bool("trace") && workers <= 1 {
		return runBatchTraced(c, inputs, cfg, theme)
	}

	if c.Bool("progress") {
		results, err := RunWithProgress(inputs, cfg)
		if err != nil {
			return cli.Exit(fmt.Sprintf("solve: %v", err), 1)
		}
		printResults(c, results, theme)
		return nil
	}

	var results []bench.DealResult
	var err error
	if workers > 1 {
		results, err = bench.RunParallel(context.Background(), inputs, cfg, workers)
	} else {
		results = bench.RunSequential(inputs, cfg)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("solve: %v", err), 1)
	}

	printResults(c, results, theme)
	return nil
}

// runBatchTraced runs sequentially so a single interleaved trace stream on
// stderr stays attributable to one deal at a time.
func runBatchTraced(c *cli.Context, inputs []bench.DealInput, cfg solver.Config, theme render.Theme) error {
	results := make([]bench.DealResult, 0, len(inputs))
	for _, in := range inputs {
		start := time.Now()
		g := game.New(in.Trump, bench.DeclarerFor(in.LeadSeat), in.Hands)
		s := solver.New(g, cfg)
		s.EnableTrace(os.Stderr)
		res := s.Solve()
		results = append(results, bench.DealResult{
			Input:   in,
			Result:  res,
			Elapsed: time.Since(start),
			Stats:   s.Stats(),
		})
	}
	printResults(c, results, theme)
	return nil
}

// runBatchPlay prints only the recommended opening card per deal, via
// Solver.BestPlay rather than a full Result (spec §1's "best play" mode).
func runBatchPlay(inputs []bench.DealInput, cfg solver.Config) error {
	for i, in := range inputs {
		g := game.New(in.Trump, bench.DeclarerFor(in.LeadSeat), in.Hands)
		s := solver.New(g, cfg)
		card, ok := s.BestPlay()
		if !ok {
			fmt.Printf("%d: (no play, game already finished)\n", i)
			continue
		}
		fmt.Printf("%d: %s\n", i, notation.FormatCard(card))
	}
	return nil
}

func printResults(c *cli.Context, results []bench.DealResult, theme render.Theme) {
	format := c.String("format")
	if format == "compact" {
		fmt.Println(theme.CompactHeader())
	}
	for _, d := range results {
		if format == "labeled" {
			fmt.Print(theme.Labeled(d))
			fmt.Println()
			continue
		}
		fmt.Println(theme.CompactRow(d))
		if c.Bool("stats") {
			fmt.Printf("  nodes: %d\n", d.Stats.NodesExplored)
			fmt.Printf("  tpn: %d entries across %d buckets (max %d)\n",
				d.Stats.TPN.Entries, d.Stats.TPN.Buckets, d.Stats.TPN.MaxBucketLen)
			fmt.Printf("  tpn lookup: %d hits, %d misses, %d reads\n",
				d.Stats.TPN.LookupHits, d.Stats.TPN.LookupMisses, d.Stats.TPN.LookupReads)
			fmt.Printf("  tpn insert: %d hits, %d misses, %d reads\n",
				d.Stats.TPN.InsertHits, d.Stats.TPN.InsertMisses, d.Stats.TPN.InsertReads)
		}
	}
}

// RunWithProgress drives a batch through the tui progress model, useful
// for long random batches run interactively.
func RunWithProgress(inputs []bench.DealInput, cfg solver.Config) ([]bench.DealResult, error) {
	model := tui.New(len(inputs))
	p := tea.NewProgram(model)

	go func() {
		for i, in := range inputs {
			res := bench.SolveOne(in, cfg)
			p.Send(tui.DealDoneMsg{Index: i, Result: res})
		}
		p.Send(tui.BatchDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(tui.Model).Results(), nil
}
