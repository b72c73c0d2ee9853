// Package compiler runs the fetch stages and merges their checkpoints into
// the published artifact documents.
package compiler

import "github.com/livingdex/dexsync/internal/artifact"

// TypeData maps an elemental type slug to its display metadata.
var TypeData = map[string]artifact.TypeInfo{
	"normal":   {Zh: "一般", Color: "#A8A77A"},
	"fire":     {Zh: "火", Color: "#EE8130"},
	"water":    {Zh: "水", Color: "#6390F0"},
	"grass":    {Zh: "草", Color: "#7AC74C"},
	"electric": {Zh: "电", Color: "#F7D02C"},
	"ice":      {Zh: "冰", Color: "#96D9D6"},
	"fighting": {Zh: "格斗", Color: "#C22E28"},
	"poison":   {Zh: "毒", Color: "#A33EA1"},
	"ground":   {Zh: "地面", Color: "#E2BF65"},
	"flying":   {Zh: "飞行", Color: "#A98FF3"},
	"psychic":  {Zh: "超能力", Color: "#F95587"},
	"bug":      {Zh: "虫", Color: "#A6B91A"},
	"rock":     {Zh: "岩石", Color: "#B6A136"},
	"ghost":    {Zh: "幽灵", Color: "#735797"},
	"dragon":   {Zh: "龙", Color: "#6F35FC"},
	"dark":     {Zh: "恶", Color: "#705746"},
	"steel":    {Zh: "钢", Color: "#B7B7CE"},
	"fairy":    {Zh: "妖精", Color: "#D685AD"},
}

// EggGroupZh maps an egg-group slug to its localized name.
var EggGroupZh = map[string]string{
	"monster":    "怪兽",
	"water1":     "水中1",
	"water2":     "水中2",
	"water3":     "水中3",
	"bug":        "虫",
	"mineral":    "矿物",
	"flying":     "飞行",
	"amorphous":  "不定形",
	"field":      "陆上",
	"fairy":      "妖精",
	"ditto":      "百变怪",
	"plant":      "植物",
	"human-like": "人型",
	"dragon":     "龙",
	"no-eggs":    "未发现",
}

// ItemZh maps evolution-item slugs to localized names for use-item triggers.
var ItemZh = map[string]string{
	"water-stone":         "水之石",
	"fire-stone":          "火之石",
	"thunder-stone":       "雷之石",
	"leaf-stone":          "叶之石",
	"moon-stone":          "月之石",
	"sun-stone":           "日之石",
	"shiny-stone":         "光之石",
	"dusk-stone":          "暗之石",
	"dawn-stone":          "觉醒之石",
	"ice-stone":           "冰之石",
	"linking-cord":        "连接绳",
	"oval-stone":          "浑圆之石",
	"razor-claw":          "锐利之爪",
	"razor-fang":          "锐利之牙",
	"protector":           "护具",
	"electirizer":         "电力增幅器",
	"magmarizer":          "熔岩增幅器",
	"upgrade":             "升级数据",
	"dubious-disc":        "可疑光碟",
	"reaper-cloth":        "灵界之布",
	"deep-sea-tooth":      "深海之牙",
	"deep-sea-scale":      "深海之鳞",
	"metal-coat":          "金属膜",
	"kings-rock":          "王者之证",
	"dragon-scale":        "龙之鳞片",
	"prism-scale":         "美丽鳞片",
	"whipped-dream":       "掼奶油",
	"sachet":              "香袋",
	"tart-apple":          "酸苹果",
	"sweet-apple":         "甜苹果",
	"cracked-pot":         "破裂的茶壶",
	"chipped-pot":         "缺损的茶壶",
	"galarica-cuff":       "伽勒豆蔻手环",
	"galarica-wreath":     "伽勒豆蔻花环",
	"black-augurite":      "黑奇石",
	"peat-block":          "泥炭块",
	"auspicious-armor":    "将之铠甲",
	"malicious-armor":     "咒之铠甲",
	"scroll-of-darkness":  "恶之卷轴",
	"scroll-of-waters":    "水之卷轴",
	"syrupy-apple":        "糖浆苹果",
	"unremarkable-teacup": "凡作茶碗",
	"masterpiece-teacup":  "杰作茶碗",
	"metal-alloy":         "复合金属",
}

// HeldItemZh maps trade-evolution held-item slugs to localized names.
var HeldItemZh = map[string]string{
	"kings-rock":     "王者之证",
	"metal-coat":     "金属膜",
	"dragon-scale":   "龙之鳞片",
	"deep-sea-tooth": "深海之牙",
	"deep-sea-scale": "深海之鳞",
	"prism-scale":    "美丽鳞片",
	"protector":      "护具",
	"electirizer":    "电力增幅器",
	"magmarizer":     "熔岩增幅器",
	"upgrade":        "升级数据",
	"dubious-disc":   "可疑光碟",
	"reaper-cloth":   "灵界之布",
	"whipped-dream":  "掼奶油",
	"sachet":         "香袋",
	"oval-stone":     "浑圆之石",
	"razor-claw":     "锐利之爪",
	"razor-fang":     "锐利之牙",
}

// StatOrder fixes the canonical ordering of the base-stat vector.
var StatOrder = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

// GenRange is the inclusive catalog-number span of one generation.
type GenRange struct {
	Gen   int
	First int
	Last  int
}

// GenRanges lists the per-generation catalog spans, oldest first.
var GenRanges = []GenRange{
	{1, 1, 151},
	{2, 152, 251},
	{3, 252, 386},
	{4, 387, 493},
	{5, 494, 649},
	{6, 650, 721},
	{7, 722, 809},
	{8, 810, 905},
	{9, 906, 1025},
}

// GenerationOf returns the generation owning a catalog number, or 0 when
// the number falls outside every span.
func GenerationOf(id int) int {
	for _, r := range GenRanges {
		if id >= r.First && id <= r.Last {
			return r.Gen
		}
	}
	return 0
}
