package palette

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/keymap"
)

// DefaultHistorySize is the number of recent commands a palette remembers.
const DefaultHistorySize = 50

// Entry describes one command.
type Entry struct {
	Command     command.Command
	Title       string
	Description string
	Category    string

	// Keys lists the key sequences bound to the command, sorted.
	Keys []string
}

// Result is a search hit.
type Result struct {
	Entry Entry
	Score int

	// Matches holds the matched rune indices in the field that scored.
	Matches []int
}

// Palette searches the command set.
type Palette struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[command.Command]int
	history *History
}

// New creates a palette over every command, annotated with the bindings in
// reg. A nil registry yields entries without keys.
func New(reg *keymap.Registry) *Palette {
	p := &Palette{history: NewHistory(DefaultHistorySize)}
	p.Refresh(reg)
	return p
}

// Refresh rebuilds the entries from reg, keeping the history.
func (p *Palette) Refresh(reg *keymap.Registry) {
	all := command.All()
	entries := make([]Entry, len(all))
	index := make(map[command.Command]int, len(all))
	for i, cmd := range all {
		entries[i] = Entry{Command: cmd, Title: title(cmd.String())}
		index[cmd] = i
	}

	if reg != nil {
		for _, b := range reg.Bindings() {
			cmd, ok := command.Parse(b.Command)
			if !ok {
				continue
			}
			e := &entries[index[cmd]]
			if e.Description == "" && b.Description != "" {
				e.Description = b.Description
			}
			if e.Category == "" && b.Category != "" {
				e.Category = b.Category
			}
		}
		for i := range entries {
			entries[i].Keys = reg.KeysFor(entries[i].Command)
		}
	}

	p.mu.Lock()
	p.entries = entries
	p.index = index
	p.mu.Unlock()
}

// Get returns the entry for cmd.
func (p *Palette) Get(cmd command.Command) (Entry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[cmd]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Search returns entries matching query, best first. An empty query lists
// recent commands first and then the rest alphabetically by title. A limit
// of zero or less returns every match.
func (p *Palette) Search(query string, limit int) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return p.browse(limit)
	}

	q := []rune(strings.ToLower(query))
	p.mu.RLock()
	var results []Result
	for _, e := range p.entries {
		if s, matches := matchEntry(q, e); s > 0 {
			results = append(results, Result{Entry: e, Score: s, Matches: matches})
		}
	}
	p.mu.RUnlock()

	for i := range results {
		if pos := p.history.Position(results[i].Entry.Command); pos >= 0 {
			results[i].Score += recencyBonus(pos)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.Title < results[j].Entry.Title
	})
	return truncate(results, limit)
}

func (p *Palette) browse(limit int) []Result {
	recent := p.history.Recent(0)

	p.mu.RLock()
	results := make([]Result, 0, len(p.entries))
	seen := make(map[command.Command]bool, len(recent))
	for _, cmd := range recent {
		if i, ok := p.index[cmd]; ok {
			results = append(results, Result{Entry: p.entries[i]})
			seen[cmd] = true
		}
	}
	rest := make([]Entry, 0, len(p.entries))
	for _, e := range p.entries {
		if !seen[e.Command] {
			rest = append(rest, e)
		}
	}
	p.mu.RUnlock()

	sort.Slice(rest, func(i, j int) bool { return rest[i].Title < rest[j].Title })
	for _, e := range rest {
		results = append(results, Result{Entry: e})
	}
	return truncate(results, limit)
}

// recencyBonus favours the most recent commands, fading to nothing after
// ten.
func recencyBonus(pos int) int {
	if pos >= 10 {
		return 0
	}
	return (10 - pos) * 5
}

func truncate(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// Record notes that cmd ran.
func (p *Palette) Record(cmd command.Command) {
	if cmd.Valid() {
		p.history.Add(cmd)
	}
}

// History returns recently run commands, most recent first.
func (p *Palette) History() []command.Command {
	return p.history.Recent(0)
}

// Suggest returns the command whose identifier best matches name, for
// "did you mean" hints. Names that are a subsequence of an identifier are
// preferred; otherwise the nearest identifier by edit distance is chosen
// when it is close enough.
func Suggest(name string) (command.Command, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return command.Unknown, false
	}
	q := []rune(lower)

	best, bestScore := command.Unknown, 0
	for _, cmd := range command.All() {
		if s, _ := fuzzyMatch(q, cmd.String()); s > bestScore {
			best, bestScore = cmd, s
		}
	}
	if bestScore > 0 {
		return best, true
	}

	bestDist := maxEditDistance(lower) + 1
	for _, cmd := range command.All() {
		if d := distance(lower, strings.ToLower(cmd.String())); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best, best != command.Unknown
}

func maxEditDistance(s string) int {
	n := len([]rune(s)) / 3
	if n < 1 {
		return 1
	}
	return n
}

// distance is the Levenshtein distance between a and b.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
