package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"

	"github.com/fathomcode/fathom/pkg/models"
)

// Report wraps an AnalysisResult for rendering in every output format.
type Report struct {
	Result *models.AnalysisResult
}

func NewReport(result *models.AnalysisResult) *Report {
	return &Report{Result: result}
}

func (r *Report) RenderData() any {
	return r.Result
}

func (r *Report) RenderText(w io.Writer, colored bool) error {
	res := r.Result

	title := "Code Analysis Report"
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Primary language: %s\n", res.PrimaryLanguage)
	fmt.Fprintf(w, "Files analyzed:   %d\n\n", res.FilesAnalyzed)

	if len(res.LanguageDistribution) > 0 {
		r.languageTable().RenderText(w, colored)
	}

	fmt.Fprintf(w, "Lines: %d total, %d code (%.1f%%), %d comment (%.1f%%), %d blank (%.1f%%)\n",
		res.Lines.TotalLines,
		res.Lines.CodeLines, res.Lines.CodePercentage,
		res.Lines.CommentLines, res.Lines.CommentPercentage,
		res.Lines.BlankLines, res.Lines.BlankPercentage)
	fmt.Fprintf(w, "Documentation: %s (%.1f%% comment ratio)\n\n",
		res.Lines.DocumentationQuality, res.Lines.CommentRatio)

	fmt.Fprintf(w, "Complexity: avg %.1f (min %.0f, max %.0f) across %d functions via %s\n",
		res.Complexity.Average, res.Complexity.Min, res.Complexity.Max,
		res.Complexity.TotalFunctions, res.Complexity.Method)
	fmt.Fprintf(w, "Distribution: %d simple / %d moderate / %d complex\n\n",
		res.Complexity.Distribution.Simple,
		res.Complexity.Distribution.Moderate,
		res.Complexity.Distribution.Complex)

	fmt.Fprintf(w, "Maintainability index: %.1f\n", res.MaintainabilityIndex)
	for _, f := range res.LowMaintainabilityFiles {
		fmt.Fprintf(w, "  low: %s (%.1f)\n", f.File, f.Index)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Duplication: %.1f%% (%d files above 5%% internal duplication)\n",
		res.Duplication.Percentage, res.Duplication.FilesWithDuplication)
	for _, b := range res.Duplication.Blocks {
		fmt.Fprintf(w, "  %dx %q\n", b.Occurrences, b.Content)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Technical debt: %d minutes\n", res.Debt.TotalMinutes)
	fmt.Fprintf(w, "  duplication %d, complexity %d, documentation %d, long functions %d, quality %d\n\n",
		res.Debt.Breakdown.Duplication, res.Debt.Breakdown.Complexity,
		res.Debt.Breakdown.Documentation, res.Debt.Breakdown.LongFunctions,
		res.Debt.Breakdown.Quality)

	if len(res.Files) > 0 {
		r.fileTable().RenderText(w, colored)
	}
	if len(res.Functions) > 0 {
		r.functionTable().RenderText(w, colored)
	}

	scoreLine := fmt.Sprintf("Understanding score: %d/100 (%s)",
		res.Understanding.Score, res.Understanding.Level)
	if colored {
		levelColor(res.Understanding.Level).Fprintln(w, scoreLine)
	} else {
		fmt.Fprintln(w, scoreLine)
	}
	keys := make([]string, 0, len(res.Understanding.Details))
	for k := range res.Understanding.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, res.Understanding.Details[k])
	}

	return nil
}

func (r *Report) RenderMarkdown(w io.Writer) error {
	res := r.Result

	fmt.Fprintln(w, "# Code Analysis Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Primary language: %s\n", res.PrimaryLanguage)
	fmt.Fprintf(w, "- Files analyzed: %d\n", res.FilesAnalyzed)
	fmt.Fprintf(w, "- Lines: %d (%.1f%% code, %.1f%% comments)\n",
		res.Lines.TotalLines, res.Lines.CodePercentage, res.Lines.CommentPercentage)
	fmt.Fprintf(w, "- Documentation: %s\n", res.Lines.DocumentationQuality)
	fmt.Fprintf(w, "- Complexity: avg %.1f via %s\n", res.Complexity.Average, res.Complexity.Method)
	fmt.Fprintf(w, "- Maintainability index: %.1f\n", res.MaintainabilityIndex)
	fmt.Fprintf(w, "- Duplication: %.1f%%\n", res.Duplication.Percentage)
	fmt.Fprintf(w, "- Technical debt: %d minutes\n", res.Debt.TotalMinutes)
	fmt.Fprintf(w, "- Understanding score: %d/100 (%s)\n", res.Understanding.Score, res.Understanding.Level)
	fmt.Fprintln(w)

	if len(res.LanguageDistribution) > 0 {
		if err := r.languageTable().RenderMarkdown(w); err != nil {
			return err
		}
	}
	if len(res.Files) > 0 {
		if err := r.fileTable().RenderMarkdown(w); err != nil {
			return err
		}
	}
	if len(res.Functions) > 0 {
		if err := r.functionTable().RenderMarkdown(w); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) languageTable() *Table {
	names := make([]string, 0, len(r.Result.LanguageDistribution))
	for name := range r.Result.LanguageDistribution {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a := r.Result.LanguageDistribution[names[i]]
		b := r.Result.LanguageDistribution[names[j]]
		if a.Lines != b.Lines {
			return a.Lines > b.Lines
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		share := r.Result.LanguageDistribution[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(share.Lines),
			fmt.Sprintf("%.1f%%", share.Percentage),
		})
	}
	return NewTable("Languages", []string{"Language", "Lines", "Share"}, rows, nil, nil)
}

func (r *Report) fileTable() *Table {
	rows := make([][]string, 0, len(r.Result.Files))
	for _, f := range r.Result.Files {
		rows = append(rows, []string{
			f.Path,
			strconv.Itoa(f.Lines),
			fmt.Sprintf("%.1f", f.Complexity),
			fmt.Sprintf("%.1f", f.MaintainabilityIndex),
			fmt.Sprintf("%.1f%%", f.DuplicationPercentage),
			strconv.Itoa(f.PriorityScore),
			string(f.Priority),
		})
	}
	return NewTable("Files Needing Attention",
		[]string{"File", "Lines", "Complexity", "MI", "Duplication", "Score", "Priority"},
		rows, nil, nil)
}

func (r *Report) functionTable() *Table {
	rows := make([][]string, 0, len(r.Result.Functions))
	for _, fn := range r.Result.Functions {
		doc := "yes"
		if !fn.HasDoc {
			doc = "no"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d", fn.File, fn.StartLine),
			fn.Name,
			strconv.Itoa(fn.Complexity),
			string(fn.Category),
			strconv.Itoa(fn.Lines),
			doc,
		})
	}
	return NewTable("Functions Needing Attention",
		[]string{"Location", "Function", "Complexity", "Category", "Length", "Documented"},
		rows, nil, nil)
}

func levelColor(level models.DifficultyLevel) *color.Color {
	switch level {
	case models.DifficultyEasy:
		return color.New(color.FgGreen, color.Bold)
	case models.DifficultyModerate:
		return color.New(color.FgCyan, color.Bold)
	case models.DifficultyChallenging:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
