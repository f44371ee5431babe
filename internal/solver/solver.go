// Package solver implements the alpha-beta minimax driver that composes
// the fast-tricks estimator, the play-order heuristic, and the TPN table
// (spec §4.8). A Solver owns one GameState and one TPN table and is not
// safe for concurrent use; independent Solvers over disjoint GameStates
// may run in parallel (spec §5).
package solver

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/bran/ddsolve/internal/cards"
	"github.com/bran/ddsolve/internal/fasttricks"
	"github.com/bran/ddsolve/internal/game"
	"github.com/bran/ddsolve/internal/notation"
	"github.com/bran/ddsolve/internal/order"
	"github.com/bran/ddsolve/internal/tpn"
)

// Config toggles the three optimizations independently, so property tests
// can compare a fully-optimized run against a disabled one (spec §8,
// "Alpha-beta soundness").
type Config struct {
	UseTPN        bool
	UseFastTricks bool
	UseAlphaBeta  bool
}

// DefaultConfig enables every optimization.
func DefaultConfig() Config {
	return Config{UseTPN: true, UseFastTricks: true, UseAlphaBeta: true}
}

// Disabled turns every optimization off: a plain minimax search, used as
// the soundness oracle in property tests.
func Disabled() Config {
	return Config{}
}

// Result is the outcome of a Solve call.
type Result struct {
	TricksNS      int // tricks North-South take under optimal play by both sides
	WinnersByRank cards.CardSet
	PV            []cards.Card // principal variation from the root, best move first
}

// Solver drives the search over one GameState with one TPN table.
type Solver struct {
	game          *game.State
	table         *tpn.Table
	cfg           Config
	logger        *logrus.Logger
	nodesExplored int64
}

// Stats summarizes one Solver's search work, matching the original
// reference implementation's Solver::Stats (nodes_explored plus the TPN
// table's own lookup/insert counters).
type Stats struct {
	NodesExplored int64
	TPN           tpn.Stats
}

// Stats reports the search-node count and TPN table statistics accumulated
// across every Solve/SolveWindow call made on this Solver so far.
func (s *Solver) Stats() Stats {
	return Stats{NodesExplored: s.nodesExplored, TPN: s.table.Stats()}
}

// New builds a Solver with its own fresh TPN table.
func New(g *game.State, cfg Config) *Solver {
	return NewWithTable(g, tpn.New(), cfg)
}

// NewWithTable builds a Solver sharing an existing TPN table (callers are
// responsible for the single-owner discipline of spec §5).
func NewWithTable(g *game.State, table *tpn.Table, cfg Config) *Solver {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Solver{game: g, table: table, cfg: cfg, logger: logger}
}

// EnableTrace turns on per-node trace logging to w (spec §4.8's optional
// observability mode). Tracing never changes the result.
func (s *Solver) EnableTrace(w io.Writer) {
	s.logger.SetOutput(w)
	s.logger.SetLevel(logrus.TraceLevel)
	s.logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: false})
}

// DisableTrace turns tracing back off.
func (s *Solver) DisableTrace() {
	s.logger.SetOutput(io.Discard)
	s.logger.SetLevel(logrus.PanicLevel)
}

// Table returns the solver's TPN table, e.g. for Stats() reporting.
func (s *Solver) Table() *tpn.Table { return s.table }

// Solve runs the full-window search: spec §4.8's default [0, tricks_max].
func (s *Solver) Solve() Result {
	return s.SolveWindow(0, s.game.TricksMax())
}

// SolveWindow runs the search with an explicit alpha-beta window over
// absolute NS-trick totals.
func (s *Solver) SolveWindow(alpha, beta int) Result {
	score, wbr, pv := s.solveInternal(alpha, beta)
	return Result{TricksNS: score, WinnersByRank: wbr, PV: pv}
}

// BestPlay runs Solve and returns the first card of its principal
// variation (spec §1: "can also return a best play for the seat to
// move"). When Solve settles the root without recording a PV (a TPN hit or
// a fast-tricks cutoff), it returns the first candidate whose subtree
// reaches the solved score. It returns false if the game is already
// finished.
func (s *Solver) BestPlay() (cards.Card, bool) {
	res := s.Solve()
	if len(res.PV) > 0 {
		return res.PV[0], true
	}
	if s.game.Finished() {
		return cards.Card{}, false
	}
	for _, cand := range order.Candidates(s.game) {
		s.game.Play(cand)
		score, _, _ := s.solveInternal(res.TricksNS-1, res.TricksNS+1)
		s.game.Unplay()
		if score == res.TricksNS {
			return cand, true
		}
	}
	return cards.Card{}, false
}

func (s *Solver) solveInternal(alpha, beta int) (best int, wbr cards.CardSet, pv []cards.Card) {
	g := s.game
	s.nodesExplored++

	if g.Finished() {
		return g.TricksTakenByNS(), 0, nil
	}

	maximizing := g.NextSeat().IsNorthSouth()
	startOfTrick := g.StartOfTrick()
	origAlpha, origBeta := alpha, beta

	if startOfTrick {
		if s.cfg.UseTPN {
			remaining := g.TricksLeft()
			if bound, found := s.table.Lookup(g, alpha, beta, remaining); found {
				s.trace("tpn", alpha, beta, bound.Lower)
				if bound.Lower == bound.Upper {
					return bound.Lower, 0, nil
				}
				if bound.Lower > alpha {
					alpha = bound.Lower
				}
				if bound.Upper < beta {
					beta = bound.Upper
				}
				if alpha >= beta {
					if maximizing {
						return alpha, 0, nil
					}
					return beta, 0, nil
				}
			}
		}

		if s.cfg.UseFastTricks {
			side := g.NextSeat()
			fast, fastWbr := fasttricks.Estimate(g.Hands(), side, g.Trump())
			wbr = wbr.Union(fastWbr)

			if maximizing && g.TricksTakenByNS()+fast >= beta {
				s.trace("fast-cutoff-max", alpha, beta, g.TricksTakenByNS()+fast)
				return g.TricksTakenByNS() + fast, wbr, nil
			}
			if !maximizing && g.TricksTakenByNS()+g.TricksLeft()-fast <= alpha {
				score := g.TricksTakenByNS() + g.TricksLeft() - fast
				s.trace("fast-cutoff-min", alpha, beta, score)
				return score, wbr, nil
			}
		}
	}

	candidates := order.Candidates(g)
	if maximizing {
		best = g.TricksTakenByNS() - 1
	} else {
		best = g.TricksTakenByNS() + g.TricksLeft() + 1
	}

	for _, cand := range candidates {
		g.Play(cand)
		wasCompleting := g.CurrentTrick().Size() == 0 // the play just retired a trick
		var completedWbr cards.CardSet
		if wasCompleting {
			completedWbr = g.CompletedTricks()[len(g.CompletedTricks())-1].WinnersByRank(g.Hands())
		}
		childScore, childWbr, childPV := s.solveInternal(alpha, beta)
		g.Unplay()

		improved := (maximizing && childScore > best) || (!maximizing && childScore < best)
		if improved {
			best = childScore
			pv = append([]cards.Card{cand}, childPV...)
		}

		wbr = wbr.Union(childWbr).Union(completedWbr)

		if s.cfg.UseAlphaBeta {
			if maximizing && best > alpha {
				alpha = best
			}
			if !maximizing && best < beta {
				beta = best
			}
			if (maximizing && best >= beta) || (!maximizing && best <= alpha) {
				// On cutoff, only the refuting child's own winners-by-rank
				// assumptions need to remain valid for the cutoff to hold
				// in an equivalent position (spec §4.8 step 5, §9).
				wbr = childWbr.Union(completedWbr)
				break
			}
		}
	}

	s.trace("search", origAlpha, origBeta, best)

	if startOfTrick && s.cfg.UseTPN {
		lower := g.TricksTakenByNS()
		if best > origAlpha {
			lower = best
		}
		upper := g.TricksTakenByNS() + g.TricksLeft()
		if best < origBeta {
			upper = best
		}
		var pvCard cards.Card
		if len(pv) > 0 {
			pvCard = pv[0]
		}
		s.table.Insert(g, wbr, lower, upper, g.TricksLeft(), pvCard, len(pv) > 0)
	}

	return best, wbr, pv
}

func (s *Solver) trace(tag string, alpha, beta, score int) {
	if !s.logger.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	g := s.game
	s.logger.WithFields(logrus.Fields{
		"tag":    tag,
		"seat":   g.NextSeat(),
		"alpha":  alpha,
		"beta":   beta,
		"score":  score,
		"hands":  notation.FormatHands(g.Hands()),
		"tricks": g.TricksTaken(),
	}).Trace("search node")
}
