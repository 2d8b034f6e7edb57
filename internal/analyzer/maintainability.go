package analyzer

import (
	"math"
	"sort"

	"github.com/fathomcode/fathom/pkg/models"
)

const (
	lowMaintainabilityThreshold = 50.0
	maxLowMaintainabilityFiles  = 5
)

// linearMIParams tunes the language-specific linear maintainability
// approximation used where no exact volume measure is available.
type linearMIParams struct {
	complexityWeight float64
	lengthOffset     float64
	lengthDivisor    float64
}

var linearMIByLanguage = map[string]linearMIParams{
	"JavaScript": {3, 100, 20},
	"Java":       {4, 150, 15},
	"C":          {5, 120, 25},
	"C++":        {5, 120, 25},
	"C#":         {4, 200, 12},
	"Rust":       {3.5, 100, 25},
	"PHP":        {3.5, 120, 20},
	"Ruby":       {3, 150, 18},
	"Python":     {4, 100, 20},
}

var defaultLinearMI = linearMIParams{4, 100, 20}

func linearParamsFor(language string) linearMIParams {
	switch language {
	case "TypeScript", "TSX", "JSX":
		language = "JavaScript"
	}
	if p, ok := linearMIByLanguage[language]; ok {
		return p
	}
	return defaultLinearMI
}

// maintainabilityIndex is the classic volume-based formula, rescaled to
// [0, 100] the way radon does it.
func maintainabilityIndex(volume float64, complexity int, sloc int) float64 {
	if sloc <= 0 {
		return 100
	}
	if volume < 1 {
		volume = 1
	}
	mi := (171 - 5.2*math.Log(volume) - 0.23*float64(complexity) - 16.2*math.Log(float64(sloc))) * 100 / 171
	return clampScore(mi)
}

// linearMaintainability approximates an index from average complexity and
// average file length alone.
func linearMaintainability(language string, avgComplexity, avgFileLines float64) float64 {
	p := linearParamsFor(language)
	mi := 100 - avgComplexity*p.complexityWeight - math.Max(0, avgFileLines-p.lengthOffset)/p.lengthDivisor
	return clampScore(mi)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MaintainabilityInputs carries the per-file and aggregate signals the
// estimator needs.
type MaintainabilityInputs struct {
	Language      string
	AvgComplexity float64
	AvgFileLines  float64

	// GoFiles enables the exact per-file index for natively parsed files.
	GoFiles []GoFileAnalysis
}

// MaintainabilityReport holds the project index plus the files dragging
// it down.
type MaintainabilityReport struct {
	Index    float64
	LowFiles []models.FileMaintenance
	PerFile  map[string]float64
}

// EstimateMaintainability computes the project maintainability index.
// Natively parsed files get the exact volume-based formula averaged
// across files; everything else falls back to the linear approximation.
func EstimateMaintainability(in MaintainabilityInputs) MaintainabilityReport {
	report := MaintainabilityReport{PerFile: make(map[string]float64)}

	if len(in.GoFiles) > 0 {
		sum := 0.0
		for _, fa := range in.GoFiles {
			cc := 0
			for _, fn := range fa.Functions {
				cc += fn.Complexity
			}
			mi := maintainabilityIndex(fa.HalsteadVolume, cc, fa.SourceLines)
			report.PerFile[fa.Path] = mi
			sum += mi
		}
		report.Index = models.Round1(sum / float64(len(in.GoFiles)))
	} else {
		report.Index = models.Round1(linearMaintainability(in.Language, in.AvgComplexity, in.AvgFileLines))
	}

	for file, mi := range report.PerFile {
		if mi < lowMaintainabilityThreshold {
			report.LowFiles = append(report.LowFiles, models.FileMaintenance{
				File:  file,
				Index: models.Round1(mi),
			})
		}
	}
	sort.Slice(report.LowFiles, func(i, j int) bool {
		if report.LowFiles[i].Index != report.LowFiles[j].Index {
			return report.LowFiles[i].Index < report.LowFiles[j].Index
		}
		return report.LowFiles[i].File < report.LowFiles[j].File
	})
	if len(report.LowFiles) > maxLowMaintainabilityFiles {
		report.LowFiles = report.LowFiles[:maxLowMaintainabilityFiles]
	}

	return report
}
