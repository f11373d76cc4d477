package diagnostics

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/fcstats/arsurrogate/armodel"
	"github.com/fcstats/arsurrogate/surrogate"
	"github.com/fcstats/arsurrogate/timecourse"
)

// ChannelSummary pairs original and ensemble moments for one channel.
type ChannelSummary struct {
	Name          string
	OriginalMean  float64
	OriginalStd   float64
	SurrogateMean float64
	SurrogateStd  float64
}

// NormalityCheck is a Jarque-Bera test on one channel of fit residuals.
// Gaussian reports whether normality survives at the 5% level; an ensemble
// drawn with the Gaussian branch from clearly non-normal residuals is
// worth a second look.
type NormalityCheck struct {
	Channel   string
	Statistic float64
	PValue    float64
	Gaussian  bool
}

// LagComparison pools the autocorrelation at one lag across channels
// (original) and across channels and surrogates (ensemble).
type LagComparison struct {
	Lag       int
	Original  float64
	Surrogate float64
}

// Report is the full comparison between an ensemble and its source series.
type Report struct {
	Channels  []ChannelSummary
	Normality []NormalityCheck

	ACF           []LagComparison
	ACFSimilarity float64 // 1 minus the mean absolute ACF gap, floored at 0

	// IncrementCovDistance is the relative Frobenius distance between the
	// covariance of first differences in the ensemble and in the original.
	IncrementCovDistance float64
}

// Evaluate compares ens against the pruned series and fit it came from,
// pooling autocorrelations up to maxLag.
func Evaluate(pruned *timecourse.Pruned, fit *armodel.FitResult, ens *surrogate.Ensemble, maxLag int) (*Report, error) {
	if pruned == nil || pruned.Series == nil {
		return nil, fmt.Errorf("pruned series not provided")
	}
	if fit == nil {
		return nil, fmt.Errorf("fitted model not provided")
	}
	if ens == nil || len(ens.Surrogates) == 0 {
		return nil, fmt.Errorf("ensemble is empty")
	}

	K, T := pruned.Dims()
	if T < 3 {
		return nil, fmt.Errorf("series too short to diagnose: T = %d", T)
	}
	if maxLag < 1 || maxLag >= T {
		return nil, fmt.Errorf("maxLag must be in [1, T-1], got %d with T = %d", maxLag, T)
	}
	ensT, ensK, _ := ens.Dims()
	if ensT != T || ensK != K {
		return nil, fmt.Errorf("ensemble is %dx%d, series is %dx%d", ensT, ensK, T, K)
	}

	report := &Report{}

	// 1. Channel moments, original against the pooled ensemble.
	for k := 0; k < K; k++ {
		orig := mat.Row(nil, k, pruned.Series)
		origMean, err := stats.Mean(orig)
		if err != nil {
			return nil, fmt.Errorf("channel %d mean: %v", k, err)
		}
		origStd, err := stats.StandardDeviationSample(orig)
		if err != nil {
			return nil, fmt.Errorf("channel %d std: %v", k, err)
		}

		pool := make([]float64, 0, T*len(ens.Surrogates))
		for _, surr := range ens.Surrogates {
			pool = append(pool, mat.Col(nil, k, surr)...)
		}
		surrMean, err := stats.Mean(pool)
		if err != nil {
			return nil, fmt.Errorf("channel %d ensemble mean: %v", k, err)
		}
		surrStd, err := stats.StandardDeviationSample(pool)
		if err != nil {
			return nil, fmt.Errorf("channel %d ensemble std: %v", k, err)
		}

		report.Channels = append(report.Channels, ChannelSummary{
			Name:          channelName(ens.Names, k),
			OriginalMean:  origMean,
			OriginalStd:   origStd,
			SurrogateMean: surrMean,
			SurrogateStd:  surrStd,
		})
	}

	// 2. Residual normality per channel.
	resRows := fit.ResidualRows()
	for k := 0; k < K; k++ {
		report.Normality = append(report.Normality,
			jarqueBera(channelName(ens.Names, k), mat.Col(nil, k, resRows)))
	}

	// 3. Pooled autocorrelation, original vs ensemble.
	var gapSum float64
	for lag := 1; lag <= maxLag; lag++ {
		var origSum float64
		for k := 0; k < K; k++ {
			origSum += acf(mat.Row(nil, k, pruned.Series), lag)
		}
		orig := origSum / float64(K)

		var surrSum float64
		var surrN int
		for _, surr := range ens.Surrogates {
			for k := 0; k < K; k++ {
				surrSum += acf(mat.Col(nil, k, surr), lag)
				surrN++
			}
		}
		surrPooled := surrSum / float64(surrN)

		report.ACF = append(report.ACF, LagComparison{Lag: lag, Original: orig, Surrogate: surrPooled})
		gapSum += math.Abs(orig - surrPooled)
	}
	report.ACFSimilarity = 1 - gapSum/float64(maxLag)
	if report.ACFSimilarity < 0 {
		report.ACFSimilarity = 0
	}

	// 4. Increment covariance, ensemble average against the original.
	origRows := mat.NewDense(T, K, nil)
	for t := 0; t < T; t++ {
		for k := 0; k < K; k++ {
			origRows.Set(t, k, pruned.Series.At(k, t))
		}
	}
	origInc := incrementCovariance(origRows)

	pooledInc := mat.NewDense(K, K, nil)
	for _, surr := range ens.Surrogates {
		pooledInc.Add(pooledInc, incrementCovariance(surr))
	}
	pooledInc.Scale(1/float64(len(ens.Surrogates)), pooledInc)

	var diff mat.Dense
	diff.Sub(pooledInc, origInc)
	num := frobenius(&diff)
	den := frobenius(origInc)
	switch {
	case den > 0:
		report.IncrementCovDistance = num / den
	case num == 0:
		report.IncrementCovDistance = 0
	default:
		report.IncrementCovDistance = math.Inf(1)
	}

	return report, nil
}

func channelName(names []string, k int) string {
	if k < len(names) {
		return names[k]
	}
	return fmt.Sprintf("ch%d", k+1)
}

// acf estimates the lag-l autocorrelation as the correlation between the
// series and its shifted self.
func acf(x []float64, lag int) float64 {
	if lag >= len(x) {
		return 0
	}
	r, err := stats.Correlation(x[:len(x)-lag], x[lag:])
	if err != nil || math.IsNaN(r) {
		return 0
	}
	return r
}

// jarqueBera tests one residual channel for normality via skewness and
// excess kurtosis; the statistic is asymptotically chi-squared with 2
// degrees of freedom.
func jarqueBera(channel string, x []float64) NormalityCheck {
	// A constant channel (perfectly predicted, zero-variance residuals) or
	// fewer than four rows leave the bias-corrected moments undefined.
	// Report an outright failed check instead of NaN.
	if v := stat.Variance(x, nil); len(x) < 4 || v == 0 || math.IsNaN(v) {
		return NormalityCheck{Channel: channel, Statistic: math.Inf(1), PValue: 0, Gaussian: false}
	}

	n := float64(len(x))
	skew := stat.Skew(x, nil)
	kurt := stat.ExKurtosis(x, nil)
	jb := n / 6 * (skew*skew + kurt*kurt/4)

	chiDist := distuv.ChiSquared{
		K: 2,
	}
	pValue := 1.0 - chiDist.CDF(jb)

	if pValue < 0 {
		pValue = 0
	}
	if pValue > 1 {
		pValue = 1
	}

	return NormalityCheck{
		Channel:   channel,
		Statistic: jb,
		PValue:    pValue,
		Gaussian:  pValue > 0.05,
	}
}

// incrementCovariance is the sample covariance of first differences,
// channels as columns.
func incrementCovariance(rows mat.Matrix) *mat.SymDense {
	T, K := rows.Dims()
	inc := mat.NewDense(T-1, K, nil)
	for t := 0; t < T-1; t++ {
		for k := 0; k < K; k++ {
			inc.Set(t, k, rows.At(t+1, k)-rows.At(t, k))
		}
	}
	cov := mat.NewSymDense(K, nil)
	stat.CovarianceMatrix(cov, inc, nil)
	return cov
}

func frobenius(m mat.Matrix) float64 {
	r, c := m.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sum += m.At(i, j) * m.At(i, j)
		}
	}
	return math.Sqrt(sum)
}

// String renders the report as a fixed-width table.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintln(&b, "=== Surrogate Diagnostics ===")
	fmt.Fprintf(&b, "%-12s %12s %12s %12s %12s\n", "Channel", "OrigMean", "SurrMean", "OrigStd", "SurrStd")
	for _, c := range r.Channels {
		fmt.Fprintf(&b, "%-12s %12.4f %12.4f %12.4f %12.4f\n",
			c.Name, c.OriginalMean, c.SurrogateMean, c.OriginalStd, c.SurrogateStd)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Residual normality (Jarque-Bera):")
	fmt.Fprintf(&b, "%-12s %12s %10s %10s\n", "Channel", "Statistic", "P-Value", "Gaussian")
	for _, nc := range r.Normality {
		fmt.Fprintf(&b, "%-12s %12.4f %10.4f %10v\n", nc.Channel, nc.Statistic, nc.PValue, nc.Gaussian)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Autocorrelation, original vs ensemble:")
	fmt.Fprintf(&b, "%4s %12s %12s\n", "Lag", "Original", "Surrogate")
	for _, lc := range r.ACF {
		fmt.Fprintf(&b, "%4d %12.4f %12.4f\n", lc.Lag, lc.Original, lc.Surrogate)
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "ACF similarity:                %.4f\n", r.ACFSimilarity)
	fmt.Fprintf(&b, "Increment covariance distance: %.4f\n", r.IncrementCovDistance)

	return b.String()
}
