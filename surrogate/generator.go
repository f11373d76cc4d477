package surrogate

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/fcstats/arsurrogate/armodel"
	"github.com/fcstats/arsurrogate/timecourse"
)

// Generator synthesizes surrogate ensembles. The zero Options give
// time-seeded, CPU-parallel generation; set Options.Seed for reproducible
// output.
type Generator struct {
	opts   Options
	logger *logrus.Logger
}

// NewGenerator returns a Generator with the given options. A nil logger
// falls back to a default logrus logger.
func NewGenerator(opts Options, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{opts: opts, logger: logger}
}

// Generate runs the full pipeline on a raw time course with default
// options and logging.
func Generate(tc *timecourse.TimeCourse, nSurr, order int, distribution ...Distribution) (*Ensemble, error) {
	return NewGenerator(Options{}, nil).Generate(tc, nSurr, order, distribution...)
}

// Generate prunes tc, fits an order-p autoregression to the surviving
// channels and synthesizes nSurr surrogate time courses. The optional
// trailing argument selects the noise branch; omitted means Gaussian,
// and more than one value is an argument count error.
func (g *Generator) Generate(tc *timecourse.TimeCourse, nSurr, order int, distribution ...Distribution) (*Ensemble, error) {
	dist, err := pickDistribution(distribution)
	if err != nil {
		return nil, err
	}
	if tc == nil || tc.Data == nil {
		return nil, fmt.Errorf("time course not provided")
	}
	if nSurr < 1 {
		return nil, fmt.Errorf("number of surrogates must be >= 1, got %d", nSurr)
	}
	if order < 1 {
		return nil, fmt.Errorf("lag order must be >= 1, got %d", order)
	}

	start := time.Now()
	T, K := tc.Dims()
	g.logger.WithFields(logrus.Fields{
		"timepoints":   T,
		"channels":     K,
		"n_surr":       nSurr,
		"order":        order,
		"distribution": dist,
	}).Info("Generating surrogate time courses")

	// 1. Drop channels that never deviate from zero.
	pruned, err := timecourse.Prune(tc, order)
	if err != nil {
		if errors.Is(err, timecourse.ErrNoActiveChannels) || errors.Is(err, timecourse.ErrTooShort) {
			return nil, fmt.Errorf("%w: %w", ErrDegenerateInput, err)
		}
		return nil, err
	}
	if kept, _ := pruned.Dims(); kept < K {
		g.logger.WithFields(logrus.Fields{
			"kept":    kept,
			"dropped": K - kept,
		}).Info("Pruned inactive channels")
	}

	// 2. Fit the autoregression on the surviving channels.
	fit, err := armodel.Fit(pruned.Series, order)
	if err != nil {
		return nil, fmt.Errorf("autoregression failed: %v", err)
	}

	// 3. Synthesize the ensemble.
	ens, err := g.Synthesize(pruned, fit, nSurr, dist)
	if err != nil {
		return nil, err
	}

	g.logger.WithFields(logrus.Fields{
		"n_surr":   nSurr,
		"duration": time.Since(start),
	}).Info("Surrogate generation complete")

	return ens, nil
}

// Synthesize builds nSurr surrogates from an already pruned series and its
// fitted model. Per-surrogate RNG streams are seeded upfront from the
// master RNG, so output depends only on Options.Seed, never on worker
// count or scheduling.
func (g *Generator) Synthesize(pruned *timecourse.Pruned, fit *armodel.FitResult, nSurr int, distribution ...Distribution) (*Ensemble, error) {
	dist, err := pickDistribution(distribution)
	if err != nil {
		return nil, err
	}
	if pruned == nil || pruned.Series == nil {
		return nil, fmt.Errorf("pruned series not provided")
	}
	if fit == nil {
		return nil, fmt.Errorf("fitted model not provided")
	}
	if nSurr < 1 {
		return nil, fmt.Errorf("number of surrogates must be >= 1, got %d", nSurr)
	}

	// 1. Split the coefficient matrix into intercept and lag blocks and
	//    check it against the series it is supposed to describe.
	model, err := fit.Model()
	if err != nil {
		return nil, err
	}
	K, T := pruned.Dims()
	if model.Channels() != K {
		return nil, fmt.Errorf("model has %d channels, pruned series has %d", model.Channels(), K)
	}
	if T <= fit.Order {
		return nil, fmt.Errorf("%w: T = %d, order = %d", ErrDegenerateInput, T, fit.Order)
	}

	// 2. Residual rows feed the empirical branch directly and parameterize
	//    the noise model for the gaussian branch.
	resRows := fit.ResidualRows()
	nObs, _ := resRows.Dims()
	if nObs != T-fit.Order {
		return nil, fmt.Errorf("fit covers %d timepoints, pruned series implies %d", nObs, T-fit.Order)
	}

	var gauss *gaussianNoise
	if dist == Gaussian {
		gauss, err = newGaussianNoise(resRows)
		if err != nil {
			return nil, err
		}
	}

	// 3. Draw all per-surrogate seeds upfront from the master RNG so
	//    results are reproducible regardless of worker scheduling.
	masterSeed := g.opts.Seed
	if masterSeed == 0 {
		masterSeed = time.Now().UnixNano()
	}
	masterRng := rand.New(rand.NewSource(masterSeed))
	seeds := make([]int64, nSurr)
	for u := range seeds {
		seeds[u] = masterRng.Int63()
	}

	numWorkers := g.opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > nSurr {
		numWorkers = nSurr
	}

	g.logger.WithFields(logrus.Fields{
		"n_surr":      nSurr,
		"workers":     numWorkers,
		"master_seed": masterSeed,
	}).Info("Synthesizing surrogates")

	// 4. Worker pool over surrogate indices.
	jobs := make(chan int)
	resultsCh := make(chan surrogateDraw, nSurr)

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	worker := func() {
		defer wg.Done()

		for u := range jobs {
			// Local RNG for this surrogate.
			rng := rand.New(rand.NewSource(seeds[u]))
			data, errSyn := synthesizeOne(rng, pruned, model, gauss, resRows)
			resultsCh <- surrogateDraw{index: u, data: data, err: errSyn}
		}
	}

	for w := 0; w < numWorkers; w++ {
		go worker()
	}

	go func() {
		for u := 0; u < nSurr; u++ {
			jobs <- u
		}
		close(jobs)
	}()

	// 5. Collect results back into input order.
	surrs := make([]*mat.Dense, nSurr)
	var firstErr error
	for i := 0; i < nSurr; i++ {
		draw := <-resultsCh
		if draw.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("surrogate %d: %v", draw.index, draw.err)
			}
			continue
		}
		surrs[draw.index] = draw.data
	}
	wg.Wait()
	close(resultsCh)

	if firstErr != nil {
		return nil, firstErr
	}

	return &Ensemble{
		Surrogates:   surrs,
		Names:        pruned.Names,
		Kept:         pruned.Kept,
		Distribution: dist,
		Seed:         masterSeed,
	}, nil
}

// surrogateDraw carries one worker result back to the aggregator.
type surrogateDraw struct {
	index int
	data  *mat.Dense
	err   error
}

// synthesizeOne builds a single T x K' surrogate. Random draws happen in a
// fixed order: start window index, then the noise bank (gaussian branch
// only), then the injection permutation. A given rng stream therefore
// reproduces the surrogate exactly.
func synthesizeOne(rng *rand.Rand, pruned *timecourse.Pruned, model *armodel.ARModel, gauss *gaussianNoise, resRows *mat.Dense) (*mat.Dense, error) {
	p := model.Order()
	K := model.Channels()
	nObs, _ := resRows.Dims()

	// 1. Seed rows: a contiguous window of the original series.
	s := rng.Intn(nObs)
	window, err := pruned.Window(s, p)
	if err != nil {
		return nil, err
	}

	// 2. Noise bank: fresh multivariate normal draws, or the residual rows
	//    themselves for the empirical branch.
	bank := resRows
	if gauss != nil {
		bank = gauss.drawBank(rng, nObs)
	}

	// 3. Injection order.
	perm := rng.Perm(nObs)

	innovations := mat.NewDense(nObs, K, nil)
	for i := 0; i < nObs; i++ {
		src := perm[i]
		for k := 0; k < K; k++ {
			innovations.Set(i, k, bank.At(src, k))
		}
	}

	// 4. Roll the fitted recursion forward from the window.
	return armodel.Simulate(model, window, innovations)
}

// pickDistribution resolves the optional trailing distribution argument.
// Absent means Gaussian; more than one value is rejected before any other
// validation.
func pickDistribution(distribution []Distribution) (Distribution, error) {
	switch len(distribution) {
	case 0:
		return Gaussian, nil
	case 1:
		d := distribution[0]
		if d != Gaussian && d != NonGaussian {
			return "", fmt.Errorf("%w: %q", ErrInvalidDistribution, string(d))
		}
		return d, nil
	}
	return "", fmt.Errorf("%w: at most one distribution, got %d", ErrArgumentCount, len(distribution))
}
