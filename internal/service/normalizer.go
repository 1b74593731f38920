package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites free-text food and exercise queries into the English,
// ASCII vocabulary the upstream resolvers understand. It owns its mapping
// tables explicitly: construction seeds the built-in defaults and Reload can
// swap in a table from disk. Every method is best effort and falls back to
// the cleaned input text, never to an error.
type Normalizer struct {
	mu     sync.RWMutex
	units  map[string]string
	sports map[string]string
}

// NewNormalizer creates a Normalizer seeded with the built-in unit and
// sport tables.
func NewNormalizer() *Normalizer {
	n := &Normalizer{
		units:  make(map[string]string, len(defaultUnitVariants)),
		sports: make(map[string]string, len(defaultSportsMapping)),
	}
	for k, v := range defaultUnitVariants {
		n.units[k] = v
	}
	for k, v := range defaultSportsMapping {
		n.sports[k] = v
	}
	return n
}

// CleanText folds curly apostrophes, ligatures and accents down to plain
// ASCII so lookups and upstream queries are accent-insensitive.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "’", "'")
	text = strings.ReplaceAll(text, "œ", "oe")
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// NormalizeQuery rewrites a food query word by word through the unit table.
// Unknown words pass through cleaned but otherwise untouched.
func (n *Normalizer) NormalizeQuery(query string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	words := strings.Fields(CleanText(query))
	for i, w := range words {
		key := strings.ToLower(strings.Trim(w, ",.;"))
		if mapped, ok := n.units[key]; ok {
			words[i] = mapped
		}
	}
	return strings.Join(words, " ")
}

// NormalizeSport maps a sport description onto the resolver vocabulary. The
// longest matching alias anywhere in the text wins; no match returns the
// cleaned input unchanged.
func (n *Normalizer) NormalizeSport(description string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	cleaned := strings.ToLower(CleanText(description))
	best := ""
	for alias := range n.sports {
		if strings.Contains(cleaned, alias) && len(alias) > len(best) {
			best = alias
		}
	}
	if best == "" {
		return CleanText(description)
	}
	return strings.Replace(cleaned, best, n.sports[best], 1)
}

// Units returns a copy of the active unit table, for the reference endpoint.
func (n *Normalizer) Units() map[string]string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]string, len(n.units))
	for k, v := range n.units {
		out[k] = v
	}
	return out
}

// Sports returns the supported sport aliases, sorted for stable output.
func (n *Normalizer) Sports() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0, len(n.sports))
	for k := range n.sports {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Reload replaces the unit table from a two-column CSV (variant, normalized).
// The current table stays untouched when the file cannot be read or parsed.
func (n *Normalizer) Reload(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening unit mapping: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("parsing unit mapping: %w", err)
	}

	units := make(map[string]string, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			return fmt.Errorf("parsing unit mapping: row %d has %d columns, want 2", i+1, len(rec))
		}
		variant := strings.ToLower(strings.TrimSpace(CleanText(rec[0])))
		if variant == "" {
			continue
		}
		units[variant] = strings.TrimSpace(rec[1])
	}

	n.mu.Lock()
	n.units = units
	n.mu.Unlock()
	return nil
}

// defaultUnitVariants maps French measure words and their spelling variants
// to the English tokens the nutrition resolver expects.
var defaultUnitVariants = map[string]string{
	"g":         "g",
	"gr":        "g",
	"gramme":    "g",
	"grammes":   "g",
	"kg":        "kg",
	"kilo":      "kg",
	"kilos":     "kg",
	"ml":        "ml",
	"cl":        "cl",
	"l":         "l",
	"litre":     "l",
	"litres":    "l",
	"tasse":     "cup",
	"tasses":    "cups",
	"verre":     "glass",
	"verres":    "glasses",
	"bol":       "bowl",
	"bols":      "bowls",
	"tranche":   "slice",
	"tranches":  "slices",
	"cuillere":  "spoon",
	"cuilleres": "spoons",
	"poignee":   "handful",
	"poignees":  "handfuls",
	"morceau":   "piece",
	"morceaux":  "pieces",
	"portion":   "serving",
	"portions":  "servings",
	"boite":     "can",
	"boites":    "cans",
	"sachet":    "packet",
	"sachets":   "packets",
	"pincee":    "pinch",
	"pincees":   "pinches",
}

// defaultSportsMapping maps French sport names to the exercise resolver's
// vocabulary.
var defaultSportsMapping = map[string]string{
	"course a pied":  "running",
	"course":         "running",
	"footing":        "jogging",
	"jogging":        "jogging",
	"marche rapide":  "brisk walking",
	"marche":         "walking",
	"randonnee":      "hiking",
	"velo":           "cycling",
	"cyclisme":       "cycling",
	"natation":       "swimming",
	"musculation":    "weight lifting",
	"crossfit":       "crossfit",
	"yoga":           "yoga",
	"pilates":        "pilates",
	"boxe":           "boxing",
	"escalade":       "rock climbing",
	"aviron":         "rowing",
	"corde a sauter": "jump rope",
	"football":       "soccer",
	"basket":         "basketball",
	"tennis":         "tennis",
	"danse":          "dancing",
	"ski":            "skiing",
	"equitation":     "horse riding",
}
