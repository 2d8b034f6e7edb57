package analyzer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/fathomcode/fathom/pkg/models"
)

const (
	significantLineMinChars  = 15
	maxDuplicateBlocks       = 10
	maxBlockLocations        = 5
	highDuplicationThreshold = 15.0
	maxHighDuplicationFiles  = 5
	fileDuplicationFloor     = 5.0
	blockSnippetMaxChars     = 50
)

type lineOccurrence struct {
	file    string
	line    int
	content string
}

// DuplicateDetector finds repeated significant lines across a file set
// by hashing trimmed line content.
type DuplicateDetector struct {
	Warnf func(format string, args ...any)
}

func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{}
}

func (d *DuplicateDetector) warnf(format string, args ...any) {
	if d.Warnf != nil {
		d.Warnf(format, args...)
	}
}

// Analyze hashes every significant line in files and reports project-wide
// duplication, the most repeated blocks, and the worst offending files.
func (d *DuplicateDetector) Analyze(files []string) models.DuplicationResult {
	occurrences := make(map[uint64][]lineOccurrence)
	sigPerFile := make(map[string]int)

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			d.warnf("duplication: skipping %s: %v", path, err)
			continue
		}
		for i, line := range strings.Split(string(content), "\n") {
			trimmed := strings.TrimSpace(line)
			if !isSignificantLine(trimmed, path) {
				continue
			}
			sigPerFile[path]++
			h := xxhash.Sum64String(trimmed)
			occurrences[h] = append(occurrences[h], lineOccurrence{
				file:    path,
				line:    i + 1,
				content: trimmed,
			})
		}
	}

	totalSig := 0
	for _, n := range sigPerFile {
		totalSig += n
	}

	dupPerFile := make(map[string]int)
	totalDup := 0
	var blocks []models.DuplicateBlock
	for _, occs := range occurrences {
		if len(occs) < 2 {
			continue
		}
		// The first sighting is the original; only repeats count as
		// duplicated lines.
		totalDup += len(occs) - 1
		for _, o := range occs[1:] {
			dupPerFile[o.file]++
		}
		blocks = append(blocks, buildBlock(occs))
	}

	result := models.DuplicationResult{}
	if totalSig > 0 {
		result.Percentage = models.Round1(float64(totalDup) / float64(totalSig) * 100)
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Occurrences != blocks[j].Occurrences {
			return blocks[i].Occurrences > blocks[j].Occurrences
		}
		return blocks[i].Content < blocks[j].Content
	})
	if len(blocks) > maxDuplicateBlocks {
		blocks = blocks[:maxDuplicateBlocks]
	}
	result.Blocks = blocks

	var flagged []models.FileDuplication
	for file, dup := range dupPerFile {
		sig := sigPerFile[file]
		if sig == 0 {
			continue
		}
		pct := float64(dup) / float64(sig) * 100
		if pct > fileDuplicationFloor {
			result.FilesWithDuplication++
		}
		if pct > highDuplicationThreshold {
			flagged = append(flagged, models.FileDuplication{
				File:             file,
				Percentage:       models.Round1(pct),
				DuplicatedLines:  dup,
				SignificantLines: sig,
			})
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].Percentage != flagged[j].Percentage {
			return flagged[i].Percentage > flagged[j].Percentage
		}
		return flagged[i].File < flagged[j].File
	})
	if len(flagged) > maxHighDuplicationFiles {
		flagged = flagged[:maxHighDuplicationFiles]
	}
	result.HighDuplicationFiles = flagged

	return result
}

func buildBlock(occs []lineOccurrence) models.DuplicateBlock {
	locs := make([]models.Location, 0, maxBlockLocations)
	for _, o := range occs {
		if len(locs) == maxBlockLocations {
			break
		}
		locs = append(locs, models.Location{File: o.file, Line: o.line})
	}
	sum := blake3.Sum256([]byte(occs[0].content))
	snippet := occs[0].content
	if len(snippet) > blockSnippetMaxChars {
		snippet = snippet[:blockSnippetMaxChars]
	}
	return models.DuplicateBlock{
		ID:          fmt.Sprintf("%x", sum[:8]),
		Content:     snippet,
		Occurrences: len(occs),
		Locations:   locs,
	}
}

// isSignificantLine filters out short lines, comments and imports so
// boilerplate does not register as duplication.
func isSignificantLine(trimmed, path string) bool {
	if len(trimmed) <= significantLineMinChars {
		return false
	}
	if isCommentLine(trimmed, path) {
		return false
	}
	if isImportLine(trimmed) {
		return false
	}
	return true
}
