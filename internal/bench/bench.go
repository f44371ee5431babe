// Package bench runs the solver over a batch of deals, optionally in
// parallel across goroutines, each with its own Solver and TPN table
// (spec §5: "multiple Solvers on disjoint game states may run in
// parallel if each has its own TPN table").
package bench

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/deal"
	"github.com/bran/ddsolve/internal/game"
	"github.com/bran/ddsolve/internal/solver"
)

// DealInput is one deal to solve: trump, opening lead seat, and hands.
type DealInput struct {
	Trump    cards.TrumpSuit
	LeadSeat cards.Seat
	Hands    deal.Hands
}

// DealResult is the outcome of solving one DealInput.
type DealResult struct {
	Input   DealInput
	Result  solver.Result
	Elapsed time.Duration
	Stats   solver.Stats
}

// DeclarerFor returns the seat whose opening lead is leadSeat: the seat
// immediately to leadSeat's right (game.New derives the lead from
// declarer.LHO(), so this is its inverse).
func DeclarerFor(leadSeat cards.Seat) cards.Seat {
	return cards.Seat((int(leadSeat) + cards.NumSeats - 1) % cards.NumSeats)
}

// SolveOne runs a single deal to completion and reports timing and final
// TPN table statistics alongside the search result.
func SolveOne(in DealInput, cfg solver.Config) DealResult {
	start := time.Now()
	g := game.New(in.Trump, DeclarerFor(in.LeadSeat), in.Hands)
	s := solver.New(g, cfg)
	res := s.Solve()
	return DealResult{
		Input:   in,
		Result:  res,
		Elapsed: time.Since(start),
		Stats:   s.Stats(),
	}
}

// RunSequential solves every deal in inputs one at a time, in order.
func RunSequential(inputs []DealInput, cfg solver.Config) []DealResult {
	out := make([]DealResult, len(inputs))
	for i, in := range inputs {
		out[i] = SolveOne(in, cfg)
	}
	return out
}

// RunParallel solves every deal in inputs, fanning out across workers
// goroutines, each backed by its own Solver and TPN table. Results are
// returned in the same order as inputs regardless of completion order.
// The first solver error aborts remaining in-flight work and is returned;
// SolveOne itself never errors, so this only ever wraps context
// cancellation from ctx.
func RunParallel(ctx context.Context, inputs []DealInput, cfg solver.Config, workers int) ([]DealResult, error) {
	out := make([]DealResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = SolveOne(in, cfg)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
