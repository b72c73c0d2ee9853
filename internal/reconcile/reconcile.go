// Package reconcile maps externally sourced variant sprite filenames onto
// the canonical form-variant catalog. The mapping is best effort: known
// suffixes resolve through an exact table, regional one-letter suffixes
// through candidate-id construction, and everything else degrades to a
// synthesized placeholder flagged by an "ext-" id prefix for human review.
package reconcile

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/livingdex/dexsync/internal/artifact"
)

// ExternalEntry is one row of the external depositable-species listing.
type ExternalEntry struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

// suffixToFormID maps "<zero-padded-num>-<suffix>" keys from the external
// naming scheme to canonical form ids. Keys resolve only when the form
// actually exists in the catalog; ambiguous suffixes are left out and fall
// through to the heuristics below.
var suffixToFormID = map[string]string{
	// Alolan (-a)
	"019-a": "a-rattata", "020-a": "a-raticate", "026-a": "a-raichu",
	"027-a": "a-sandshrew", "028-a": "a-sandslash", "037-a": "a-vulpix",
	"038-a": "a-ninetales", "050-a": "a-diglett", "051-a": "a-dugtrio",
	"052-a": "a-meowth", "053-a": "a-persian", "074-a": "a-geodude",
	"075-a": "a-graveler", "076-a": "a-golem", "088-a": "a-grimer",
	"089-a": "a-muk", "103-a": "a-exeggutor", "105-a": "a-marowak",
	// Galarian (-g)
	"052-g": "g-meowth", "077-g": "g-ponyta", "078-g": "g-rapidash",
	"079-g": "g-slowpoke", "080-g": "g-slowbro", "083-g": "g-farfetchd",
	"110-g": "g-weezing", "122-g": "g-mrmime", "144-g": "g-articuno",
	"145-g": "g-zapdos", "146-g": "g-moltres", "199-g": "g-slowking",
	"263-g": "g-zigzagoon", "264-g": "g-linoone", "554-g": "g-darumaka",
	"555-g": "g-darmanitan", "562-g": "g-yamask", "618-g": "g-stunfisk",
	// Hisuian (-h)
	"058-h": "h-growlithe", "059-h": "h-arcanine", "100-h": "h-voltorb",
	"101-h": "h-electrode", "157-h": "h-typhlosion", "211-h": "h-qwilfish",
	"215-h": "h-sneasel", "503-h": "h-samurott", "549-h": "h-lilligant",
	"570-h": "h-zorua", "571-h": "h-zoroark", "628-h": "h-braviary",
	"705-h": "h-sliggoo", "706-h": "h-goodra", "713-h": "h-avalugg",
	"724-h": "h-decidueye",
	// Paldean (-p)
	"194-p": "p-wooper", "128-p": "p-tauros-c",
	// Pikachu caps; resolve only if the catalog ever carries them.
	"025-o": "pikachu-original-cap", "025-h": "pikachu-hoenn-cap",
	"025-s": "pikachu-sinnoh-cap", "025-u": "pikachu-unova-cap",
	"025-k": "pikachu-kalos-cap", "025-a": "pikachu-alola-cap",
	"025-p": "pikachu-partner-cap", "025-w": "pikachu-world-cap",
}

// regionalPrefix maps one-letter regional suffixes to form-id prefixes.
var regionalPrefix = map[string]string{"a": "a-", "g": "g-", "h": "h-", "p": "p-"}

// suffixZh names the well-known one-letter suffixes for synthesized names.
var suffixZh = map[string]string{
	"f": "♀", "a": "阿罗拉", "g": "伽勒尔", "h": "洗翠", "p": "帕底亚",
}

// Resolver reconciles external variant filenames against the canonical
// species and form catalogs.
type Resolver struct {
	speciesByID map[int]artifact.SpeciesEntry
	forms       []artifact.FormEntry
	formByID    map[string]artifact.FormEntry
	corrections map[string]Correction
	spriteBase  string
}

// NewResolver builds a Resolver. spriteBase is the URL prefix external
// sprite filenames are served under. corrections may be nil.
func NewResolver(catalog []artifact.SpeciesEntry, forms []artifact.FormEntry, corrections map[string]Correction, spriteBase string) *Resolver {
	r := &Resolver{
		speciesByID: make(map[int]artifact.SpeciesEntry, len(catalog)),
		forms:       forms,
		formByID:    make(map[string]artifact.FormEntry, len(forms)),
		corrections: corrections,
		spriteBase:  spriteBase,
	}
	for _, s := range catalog {
		r.speciesByID[s.ID] = s
	}
	for _, f := range forms {
		r.formByID[f.ID] = f
	}
	return r
}

// Resolve maps the external listing onto timeline entries in source order.
func (r *Resolver) Resolve(entries []ExternalEntry) []artifact.TimelineEntry {
	timeline := make([]artifact.TimelineEntry, 0, len(entries))
	unresolved := 0

	for _, e := range entries {
		file := path.Base(e.Src)
		base := strings.TrimSuffix(file, ".png")
		parts := strings.Split(base, "-")
		num, err := strconv.Atoi(parts[0])
		if err != nil || num == 0 {
			zap.L().Warn("skipping unparseable external filename", zap.String("file", file))
			continue
		}
		suffix := strings.Join(parts[1:], "-")
		sprite := r.spriteBase + file

		sp := r.speciesByID[num]
		baseZh := sp.Zh
		baseEn := sp.En
		if baseEn == "" {
			baseEn = strings.Split(e.Name, " ")[0]
		}

		if suffix == "" {
			timeline = append(timeline, artifact.TimelineEntry{
				ID:      "poke-" + strconv.Itoa(num),
				Num:     artifact.PadNum(num),
				NumInt:  num,
				Zh:      baseZh,
				En:      baseEn,
				Sprite:  sprite,
				Section: "main",
				IsBase:  true,
			})
			continue
		}

		entry := artifact.TimelineEntry{
			Num:        artifact.PadNum(num),
			NumInt:     num,
			Sprite:     sprite,
			Section:    "main",
			SourceFile: file,
		}

		if form, ok := r.resolveVariant(base, num, parts[1]); ok {
			entry.ID = form.ID
			entry.Zh = form.Zh
			entry.En = form.En
		} else {
			entry.ID = "ext-" + base
			entry.Zh = buildZhName(baseZh, e.Name, parts[1])
			entry.En = e.Name
			unresolved++
		}
		if entry.Zh == "" {
			entry.Zh = entry.En
		}

		timeline = append(timeline, entry)
	}

	zap.L().Info("external reconciliation complete",
		zap.Int("entries", len(timeline)),
		zap.Int("unresolved", unresolved),
	)
	return timeline
}

// resolveVariant tries, in order: the manual correction list, the exact
// suffix table, gender-convention lookup, and regional-prefix candidates.
func (r *Resolver) resolveVariant(fullKey string, num int, suffix string) (artifact.FormEntry, bool) {
	if c, ok := r.corrections[fullKey]; ok && c.FormID != "" {
		if form, ok := r.formByID[c.FormID]; ok {
			if c.Zh != "" {
				form.Zh = c.Zh
			}
			if c.En != "" {
				form.En = c.En
			}
			return form, true
		}
	}

	if id, ok := suffixToFormID[fullKey]; ok {
		if form, ok := r.formByID[id]; ok {
			return form, true
		}
	}

	if suffix == "f" {
		for _, f := range r.forms {
			if f.NumInt == num && strings.HasSuffix(f.ID, "-f") {
				return f, true
			}
		}
	}

	if prefix, ok := regionalPrefix[suffix]; ok {
		if sp, ok := r.speciesByID[num]; ok {
			candidate := prefix + sanitizeEnglish(sp.En)
			if form, ok := r.formByID[candidate]; ok {
				return form, true
			}
		}
		for _, f := range r.forms {
			if f.NumInt == num && strings.HasPrefix(f.ID, prefix) {
				return f, true
			}
		}
	}

	return artifact.FormEntry{}, false
}

// buildZhName mechanically derives a localized placeholder name: known
// one-letter suffixes get their region or gender mark, anything else keeps
// the residual fragment of the external display name.
func buildZhName(baseZh, externalName, suffix string) string {
	if zh, ok := suffixZh[suffix]; ok {
		return baseZh + " " + zh
	}
	words := strings.Fields(externalName)
	residual := ""
	if len(words) > 1 {
		residual = strings.Join(words[1:], " ")
	}
	return fmt.Sprintf("%s (%s)", baseZh, residual)
}

var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitizeEnglish lowers an English display name into a slug fragment:
// diacritics folded to their base letters, everything outside a-z dropped.
func sanitizeEnglish(name string) string {
	folded, _, err := transform.String(diacriticFold, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	var b strings.Builder
	for _, c := range folded {
		if c >= 'a' && c <= 'z' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
