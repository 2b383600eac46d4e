// internal/pattern/generate.go
//
// Pairwise pattern generation.
// Responsibilities:
//   - Score one guess against one answer with Wordle's duplicate-letter rules.
//   - Fill a whole guess×answer Matrix in one bulk pass, fanned out over a
//     bounded worker pool.
//
// Scoring is the classic two-pass algorithm over a letter equality table:
//
//	eq[i] has bit j set when guess[i] == answer[j].
//
// Green pass (i ascending): a set diagonal bit marks position i Exact, then
// column i is cleared from every row (that answer letter is used up) and row
// i is cleared (that guess letter is used up).
//
// Yellow pass (i ascending over guess positions, j ascending over answer
// positions): any remaining bit marks position i Misplaced, then column j and
// row i are cleared the same way. Every letter occurrence of either word is
// consumed at most once, and when several occurrences could match, the one
// with the lowest position wins.

package pattern

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// letterMask[c] has bit j set when the answer has byte c at position j.
// Indexed by the raw byte so any Word scores, encoded or not.
type letterMask [256]uint8

func maskOf(w Word) *letterMask {
	var m letterMask
	for j, c := range w {
		m[c] |= 1 << j
	}
	return &m
}

// score resolves the equality table built from guess and the answer's letter mask.
func score(guess Word, am *letterMask) Pattern {
	var eq [WordLength]uint8
	for i, c := range guess {
		eq[i] = am[c]
	}

	var d [WordLength]Digit

	// Green pass.
	for i := 0; i < WordLength; i++ {
		bit := uint8(1) << i
		if eq[i]&bit == 0 {
			continue
		}
		d[i] = Exact
		for k := range eq {
			eq[k] &^= bit
		}
		eq[i] = 0
	}

	// Yellow pass. Row i is already empty if position i went green.
	for i := 0; i < WordLength; i++ {
		for j := 0; j < WordLength; j++ {
			bit := uint8(1) << j
			if eq[i]&bit == 0 {
				continue
			}
			d[i] = Misplaced
			for k := range eq {
				eq[k] &^= bit
			}
			eq[i] = 0
		}
	}

	return Encode(d)
}

// Score returns the pattern shown for guess when the hidden word is answer.
// Feedback is directional: Score(a, b) and Score(b, a) differ in general.
func Score(guess, answer Word) Pattern {
	return score(guess, maskOf(answer))
}

type generateConfig struct {
	workers  int
	progress func(rows int)
}

// GenerateOption configures Generate.
type GenerateOption func(*generateConfig)

// WithWorkers bounds the number of goroutines used. n <= 0 means GOMAXPROCS.
func WithWorkers(n int) GenerateOption {
	return func(c *generateConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithProgress registers fn to be told how many guess rows each finished chunk covered.
// fn may be called from several goroutines at once.
func WithProgress(fn func(rows int)) GenerateOption {
	return func(c *generateConfig) { c.progress = fn }
}

// Generate computes the full len(guesses)×len(answers) matrix.
// The output is the same for any worker count.
func Generate(ctx context.Context, guesses, answers []Word, opts ...GenerateOption) (*Matrix, error) {
	cfg := generateConfig{workers: runtime.GOMAXPROCS(0)}
	for _, o := range opts {
		o(&cfg)
	}

	rows, cols := len(guesses), len(answers)
	m := &Matrix{rows: rows, cols: cols, data: make([]Pattern, rows*cols)}
	if rows == 0 || cols == 0 {
		return m, nil
	}

	// Answer letter masks are shared read-only by all workers.
	masks := make([]letterMask, cols)
	for c, a := range answers {
		masks[c] = *maskOf(a)
	}

	chunk := rows / (cfg.workers * 4)
	if chunk < 1 {
		chunk = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for start := 0; start < rows; start += chunk {
		if gctx.Err() != nil {
			break
		}
		end := min(start+chunk, rows)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for r := start; r < end; r++ {
				out := m.data[r*cols : (r+1)*cols]
				guess := guesses[r]
				for c := range out {
					out[c] = score(guess, &masks[c])
				}
			}
			if cfg.progress != nil {
				cfg.progress(end - start)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled parent may have stopped the loop before every chunk was queued.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
