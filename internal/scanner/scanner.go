// Package scanner implements the pattern-detection engine: applying
// every registered provider's patterns to a text buffer and emitting
// positioned, context-annotated, deduplicated Candidates in
// deterministic order.
package scanner

import (
	"strconv"
	"strings"
	"unicode/utf8"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
	"golang.org/x/exp/maps"

	"github.com/chayuto/ai-truffle-hog/internal/entropy"
	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/providers"
)

// DefaultContextLines is the default number of lines of context kept
// before and after a match.
const DefaultContextLines = 3

// Options configures a single ScanBuffer call.
type Options struct {
	// ProviderFilter restricts scanning to these provider names. Empty
	// means "all registered providers".
	ProviderFilter []string
	// ContextLines overrides DefaultContextLines when > 0.
	ContextLines int
}

// Scanner applies a Registry's providers to text buffers. It holds no
// per-scan state — all mutable bookkeeping (dedup set, ordering) lives
// in the ScanBuffer call — so a single Scanner is safe for concurrent
// use across goroutines scanning different buffers.
type Scanner struct {
	registry  *providers.Registry
	prefilter *ahocorasick.Trie
	// hasHints is false when any provider in the registry declares no
	// keyword hints; in that case the prefilter is skipped rather than
	// rejecting buffers that provider could match.
	hasHints bool
}

// New builds a Scanner backed by registry, compiling the Aho-Corasick
// keyword prefilter once up front so repeated ScanBuffer calls share it.
func New(registry *providers.Registry) *Scanner {
	keywords := map[string]struct{}{}
	allHinted := true
	for _, p := range registry.All() {
		hinter, ok := p.(providers.KeywordHinter)
		if !ok {
			allHinted = false
			continue
		}
		hints := hinter.KeywordHints()
		if len(hints) == 0 {
			allHinted = false
		}
		for _, k := range hints {
			keywords[strings.ToLower(k)] = struct{}{}
		}
	}

	s := &Scanner{registry: registry, hasHints: allHinted && len(keywords) > 0}
	if s.hasHints {
		s.prefilter = ahocorasick.NewTrieBuilder().AddStrings(maps.Keys(keywords)).Build()
	}
	return s
}

// rawMatch is one regex match before it becomes a Candidate. Raw matches
// are collected in provider registration order, then pattern order;
// sortCandidates breaks position ties by provider index and its
// insertion sort is stable, so ties within one provider keep pattern
// order.
type rawMatch struct {
	providerIdx int
	patternIdx  int
	provider    providers.Provider
	patternName string
	secret      string
	startPos    int // byte offset of the secret's first character
	endPos      int // byte offset one past the secret's last character
}

// ScanBuffer scans content for every provider pattern in scanner's
// registry (or the subset named by opts.ProviderFilter), returning
// Candidates in ascending (line, column, provider order, pattern order)
// with within-scan duplicates removed.
func (s *Scanner) ScanBuffer(content, filePath string, opts Options) []model.Candidate {
	if content == "" {
		return nil
	}

	contextLines := opts.ContextLines
	if contextLines <= 0 {
		contextLines = DefaultContextLines
	}

	if s.hasHints && !s.mayContainAnySecret(content) {
		return nil
	}

	allProviders := s.registry.All()
	var selected []providers.Provider
	if len(opts.ProviderFilter) == 0 {
		selected = allProviders
	} else {
		allow := make(map[string]struct{}, len(opts.ProviderFilter))
		for _, name := range opts.ProviderFilter {
			allow[name] = struct{}{}
		}
		for _, p := range allProviders {
			if _, ok := allow[p.Name()]; ok {
				selected = append(selected, p)
			}
		}
	}

	var raws []rawMatch
	for providerIdx, p := range selected {
		for patternIdx, pat := range p.Patterns() {
			for _, m := range pat.Re.FindAllStringSubmatchIndex(content, -1) {
				// Group 1 is always the secret per the provider
				// contract; m[2], m[3] are its
				// start/end byte offsets within content.
				if len(m) < 4 || m[2] < 0 || m[3] < 0 {
					continue
				}
				raws = append(raws, rawMatch{
					providerIdx: providerIdx,
					patternIdx:  patternIdx,
					provider:    p,
					patternName: pat.Name,
					secret:      content[m[2]:m[3]],
					startPos:    m[2],
					endPos:      m[3],
				})
			}
		}
	}

	lineStarts := newlineIndex(content)
	lines := strings.Split(content, "\n")

	seen := make(map[string]struct{}, len(raws))
	candidates := make([]model.Candidate, 0, len(raws))

	for _, r := range raws {
		line, col := positionToLineCol(content, lineStarts, r.startPos)
		colEnd := col + (r.endPos - r.startPos)

		key := filePath + "\x00" + strconv.Itoa(line) + "\x00" + strconv.Itoa(col) + "\x00" + r.secret
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		c := model.NewCandidate(r.provider.Name(), r.patternName, filePath, line, col, colEnd, r.secret)
		c.Entropy = entropy.Shannon(r.secret)
		c.ContextLines = contextWindow(lines, line, contextLines)

		precedingStart := r.startPos - 100
		if precedingStart < 0 {
			precedingStart = 0
		}
		c.VariableName = extractVariableName(content[precedingStart:r.startPos])

		candidates = append(candidates, c)
	}

	sortCandidates(candidates, selected)
	return candidates
}

// mayContainAnySecret is the Aho-Corasick prefilter gate: a buffer that
// contains none of the registered providers' keyword hints cannot match
// any pattern, so the (comparatively expensive) regex passes are skipped
// entirely: most scanned files contain no secrets, and keyword matching
// is far cheaper than running dozens of regexes per file.
func (s *Scanner) mayContainAnySecret(content string) bool {
	lower := strings.ToLower(content)
	return len(s.prefilter.Match([]byte(lower))) > 0
}

func newlineIndex(content string) []int {
	idx := make([]int, 0, strings.Count(content, "\n"))
	offset := 0
	for {
		i := strings.IndexByte(content[offset:], '\n')
		if i == -1 {
			break
		}
		idx = append(idx, offset+i)
		offset = offset + i + 1
	}
	return idx
}

// positionToLineCol converts a byte offset into a 1-based line number
// and a 1-based column (character count from the start of the line).
// lineStarts holds the byte offset of every '\n' in the buffer; the
// column is counted in runes, not bytes,
// so multi-byte characters earlier on the line don't skew it.
func positionToLineCol(content string, lineStarts []int, pos int) (line, col int) {
	line = 1
	lineBegin := 0
	for _, nl := range lineStarts {
		if nl < pos {
			line++
			lineBegin = nl + 1
			continue
		}
		break
	}
	col = utf8.RuneCountInString(content[lineBegin:pos]) + 1
	return line, col
}

func contextWindow(lines []string, matchLine, contextLines int) []string {
	startIdx := matchLine - 1 - contextLines
	if startIdx < 0 {
		startIdx = 0
	}
	endIdx := matchLine + contextLines
	if endIdx > len(lines) {
		endIdx = len(lines)
	}
	if startIdx >= endIdx {
		return nil
	}
	window := make([]string, 0, endIdx-startIdx)
	for _, l := range lines[startIdx:endIdx] {
		window = append(window, strings.TrimSpace(l))
	}
	return window
}

func sortCandidates(candidates []model.Candidate, selected []providers.Provider) {
	providerIdx := make(map[string]int, len(selected))
	for i, p := range selected {
		providerIdx[p.Name()] = i
	}

	// Simple insertion sort: candidate counts per buffer are small
	// (typically well under a few hundred) and this keeps the tie-break
	// logic easy to audit.
	for i := 1; i < len(candidates); i++ {
		j := i
		for j > 0 && less(candidates[j], candidates[j-1], providerIdx) {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
			j--
		}
	}
}

func less(a, b model.Candidate, providerIdx map[string]int) bool {
	if a.LineNumber != b.LineNumber {
		return a.LineNumber < b.LineNumber
	}
	if a.ColumnStart != b.ColumnStart {
		return a.ColumnStart < b.ColumnStart
	}
	return providerIdx[a.Provider] < providerIdx[b.Provider]
}

