package wikitable

import (
	"bytes"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/livingdex/dexsync/internal/artifact"
)

// ParsedEvent is one extracted distribution record before grouping.
type ParsedEvent struct {
	NumInt int
	Event  artifact.DistributionEvent
}

var (
	contentSel = cascadia.MustCompile("#mw-content-text .mw-parser-output")

	editMarkRe = regexp.MustCompile(`\[编辑\]|\[編輯\]`)

	speciesHeaderRe = regexp.MustCompile(`宝可梦|寶可夢`)
	otHeaderRe      = regexp.MustCompile(`初训家|初訓家`)
	otOrIDHeaderRe  = regexp.MustCompile(`初训家|初訓家|ID`)
	levelHeaderRe   = regexp.MustCompile(`等级|等級`)
	dateHeaderRe    = regexp.MustCompile(`接收时间|接收時間`)
	methodHeaderRe  = regexp.MustCompile(`接收方法|接收方式`)
	gamesHeaderRe   = regexp.MustCompile(`接收版本|接收版`)

	yearRowRe     = regexp.MustCompile(`^\d{4}年?$`)
	genderTailRe  = regexp.MustCompile(`\s*[♂♀]\s*/?\s*[♂♀]?\s*$`)
	fullWidthQual = regexp.MustCompile(`（[^）]*）`)
	halfWidthQual = regexp.MustCompile(`\([^)]*\)`)
	genderAnyRe   = regexp.MustCompile(`\s*[♂♀].*$`)
	levelPrefixRe = regexp.MustCompile(`(?i)^Lv\.?\s*`)
	nonDigitRe    = regexp.MustCompile(`\D`)
	dateTokenRe   = regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`)
)

// maxDateLen is the rune threshold past which a free-text date range is
// truncated to its first date token.
const maxDateLen = 50

// columns holds resolved header column indices; -1 means the role's column
// is absent from this table.
type columns struct {
	species, ot, id, level, date, method, games int
}

// ExtractEvents pulls distribution-event records out of one generation's
// wiki page. Tables that do not look like event tables are skipped; rows
// that cannot resolve a species id through nameMap are dropped.
func ExtractEvents(page []byte, gen int, nameMap map[string]int) ([]ParsedEvent, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, eris.Wrap(err, "wikitable: parse page")
	}

	content := cascadia.Query(doc, contentSel)
	if content == nil {
		zap.L().Warn("no parser-output container on page", zap.Int("gen", gen))
		return nil, nil
	}

	var events []ParsedEvent
	heading := ""

	for el := content.FirstChild; el != nil; el = el.NextSibling {
		if el.Type != html.ElementNode {
			continue
		}
		switch el.DataAtom {
		case atom.H2, atom.H3, atom.H4:
			heading = strings.TrimSpace(editMarkRe.ReplaceAllString(CleanText(el), ""))
			continue
		case atom.Table:
		default:
			continue
		}

		grid := Expand(el)
		if len(grid) < 2 {
			continue
		}

		header := grid[0]
		joined := strings.Join(header, "|")
		if !speciesHeaderRe.MatchString(joined) || !otOrIDHeaderRe.MatchString(joined) {
			continue
		}

		cols := resolveColumns(header)
		if cols.species < 0 {
			continue
		}

		gameContext := DetectGame(heading)
		events = append(events, extractRows(grid[1:], cols, gen, gameContext, nameMap)...)
	}

	return events, nil
}

func resolveColumns(header []string) columns {
	cols := columns{species: -1, ot: -1, id: -1, level: -1, date: -1, method: -1, games: -1}
	for i, h := range header {
		switch {
		case speciesHeaderRe.MatchString(h) && cols.species < 0:
			cols.species = i
		case otHeaderRe.MatchString(h) && cols.ot < 0:
			cols.ot = i
		}
		if strings.Contains(h, "ID") && cols.id < 0 {
			cols.id = i
		}
		if levelHeaderRe.MatchString(h) && cols.level < 0 {
			cols.level = i
		}
		if dateHeaderRe.MatchString(h) && cols.date < 0 {
			cols.date = i
		}
		if methodHeaderRe.MatchString(h) && cols.method < 0 {
			cols.method = i
		}
		if gamesHeaderRe.MatchString(h) && cols.games < 0 {
			cols.games = i
		}
	}
	return cols
}

func extractRows(rows [][]string, cols columns, gen int, gameContext string, nameMap map[string]int) []ParsedEvent {
	var events []ParsedEvent
	currentYear := ""

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range rows {
		if len(row) < 3 {
			continue
		}

		// A near-empty row holding a bare year updates the year context
		// and is not an event.
		first := strings.TrimSpace(row[0])
		if yearRowRe.MatchString(first) && nonEmptyCells(row) <= 2 {
			currentYear = strings.TrimSuffix(first, "年")
			continue
		}

		name := cell(row, cols.species)
		if name == "" || speciesHeaderRe.MatchString(name) {
			continue
		}

		// Display name keeps form qualifiers but drops trailing gender
		// marks; id lookup uses the fully stripped base name.
		name = strings.TrimSpace(genderTailRe.ReplaceAllString(name, ""))
		baseName := BaseSpeciesName(name)
		numInt, ok := nameMap[baseName]
		if !ok {
			numInt, ok = nameMap[name]
		}
		if !ok {
			continue
		}

		ot := cell(row, cols.ot)
		if ot == "" {
			ot = "—"
		}

		var level *int
		levelText := nonDigitRe.ReplaceAllString(levelPrefixRe.ReplaceAllString(cell(row, cols.level), ""), "")
		if levelText != "" {
			if v, err := strconv.Atoi(levelText); err == nil {
				level = &v
			}
		}

		date := cell(row, cols.date)
		if utf8.RuneCountInString(date) > maxDateLen {
			if m := dateTokenRe.FindString(date); m != "" {
				date = m + "~"
			}
		}

		games := cell(row, cols.games)
		if games == "" {
			games = gameContext
		}

		events = append(events, ParsedEvent{
			NumInt: numInt,
			Event: artifact.DistributionEvent{
				Zh:     name,
				OT:     ot,
				Level:  level,
				Date:   date,
				Method: ClassifyMethod(cell(row, cols.method)),
				Games:  games,
				Gen:    gen,
				Year:   currentYear,
			},
		})
	}
	return events
}

func nonEmptyCells(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

// BaseSpeciesName strips parenthesized form qualifiers and gender marks,
// leaving the bare species name used for the name-to-id lookup.
func BaseSpeciesName(name string) string {
	name = fullWidthQual.ReplaceAllString(name, "")
	name = halfWidthQual.ReplaceAllString(name, "")
	name = genderAnyRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// methodRules classify free acquisition-method text, first match wins.
var methodRules = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`序列号|密语|密碼|シリアル`), "序列号"},
	{regexp.MustCompile(`互联网|网络|在线|網路|インターネット`), "网络配信"},
	{regexp.MustCompile(`现场|會場|配布|店頭`), "现场配信"},
	{regexp.MustCompile(`Wi-Fi`), "Wi-Fi"},
	{regexp.MustCompile(`HOME`), "HOME"},
	{regexp.MustCompile(`神秘礼物|ふしぎなおくりもの`), "神秘礼物"},
	{regexp.MustCompile(`红外线|赤外線`), "红外线"},
	{regexp.MustCompile(`宝可梦中心|ポケモンセンター|Pokémon Center`), "宝可梦中心"},
	{regexp.MustCompile(`竞技场|对战|バトル`), "对战奖励"},
}

// ClassifyMethod maps free acquisition-method text into the closed method
// category set, defaulting to 其他.
func ClassifyMethod(text string) string {
	if text == "" {
		return "其他"
	}
	for _, rule := range methodRules {
		if rule.re.MatchString(text) {
			return rule.category
		}
	}
	return "其他"
}

// gameRules derive the source-game tag from a section heading, first match
// wins. Rule order matters: more specific releases come before the older
// titles whose names they contain.
var gameRules = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`劍|盾|剑|Sword|Shield`), "剑盾"},
	{regexp.MustCompile(`朱|紫|Scarlet|Violet`), "朱紫"},
	{regexp.MustCompile(`HOME`), "HOME"},
	{regexp.MustCompile(`晶灿钻石|明亮珍珠|晶燦鑽石|Diamond|Pearl|BDSP`), "BDSP"},
	{regexp.MustCompile(`阿尔宙斯|阿爾宙斯|Arceus|Legends`), "PLA"},
	{regexp.MustCompile(`究极太阳|究极月亮|Ultra`), "USUM"},
	{regexp.MustCompile(`太阳|月亮|Sun|Moon`), "SM"},
	{regexp.MustCompile(`欧米伽|始源|Omega|Alpha|ORAS`), "ORAS"},
	{regexp.MustCompile(`[XY]`), "XY"},
	{regexp.MustCompile(`黑2|白2|Black 2|White 2`), "B2W2"},
	{regexp.MustCompile(`黑|白|Black|White`), "BW"},
	{regexp.MustCompile(`心金|魂银|HeartGold|SoulSilver`), "HGSS"},
	{regexp.MustCompile(`钻石|珍珠|白金|Platinum`), "DPPt"},
	{regexp.MustCompile(`火红|叶绿|FireRed|LeafGreen`), "FRLG"},
	{regexp.MustCompile(`红宝石|蓝宝石|翡翠|Ruby|Sapphire|Emerald`), "RSE"},
	{regexp.MustCompile(`金|银|水晶|Gold|Silver|Crystal`), "GSC"},
	{regexp.MustCompile(`红|绿|蓝|黄|Red|Green|Blue|Yellow`), "RBY"},
}

// DetectGame maps a section heading to the closed game-release tag set,
// defaulting to empty when nothing matches.
func DetectGame(heading string) string {
	if heading == "" {
		return ""
	}
	for _, rule := range gameRules {
		if rule.re.MatchString(heading) {
			return rule.tag
		}
	}
	return ""
}

// GroupEvents groups parsed events by species id, sorting each group's
// events newest generation first then by year descending, and the groups
// by catalog number.
func GroupEvents(events []ParsedEvent) []artifact.EventGroup {
	byID := make(map[int]*artifact.EventGroup)
	for _, ev := range events {
		g, ok := byID[ev.NumInt]
		if !ok {
			g = &artifact.EventGroup{
				NumInt: ev.NumInt,
				Zh:     BaseSpeciesName(ev.Event.Zh),
			}
			byID[ev.NumInt] = g
		}
		g.Events = append(g.Events, ev.Event)
	}

	groups := make([]artifact.EventGroup, 0, len(byID))
	for _, g := range byID {
		sort.SliceStable(g.Events, func(i, j int) bool {
			a, b := g.Events[i], g.Events[j]
			if a.Gen != b.Gen {
				return a.Gen > b.Gen
			}
			return a.Year > b.Year
		})
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].NumInt < groups[j].NumInt })
	return groups
}
