// Package classify assigns a product category from its name and description.
//
// Classification is keyword matching over static rule data, not a model:
// it is best-effort by contract, and a miss is a valid answer ("Other").
package classify

import "strings"

// Other is the category returned when no keyword set matches.
const Other = "Other"

// category pairs a label with its keyword set. Keywords mix languages and
// scripts because cross-border listings do; matching is substring-based on
// the lower-cased name+description text.
type category struct {
	label    string
	keywords []string
}

// categories is evaluated in order and the first label with any keyword hit
// wins. Categories are not scored; first match is final.
var categories = []category{
	{"Electronics", []string{
		"phone", "电话", "手机", "computer", "电脑", "laptop", "笔记本",
		"tablet", "平板", "camera", "相机", "headphone", "耳机", "charger", "充电",
	}},
	{"Clothing", []string{
		"shirt", "衬衫", "dress", "连衣裙", "pants", "裤子", "shoes", "鞋",
		"hat", "帽子", "sweater", "毛衣", "jacket", "夹克",
	}},
	{"Home", []string{
		"furniture", "家具", "decoration", "装饰", "kitchen", "厨房",
		"bedroom", "卧室", "lamp", "灯具",
	}},
	{"Beauty", []string{
		"makeup", "化妆品", "skincare", "护肤", "cosmetic", "美妆", "perfume", "香水",
	}},
	{"Food & Beverage", []string{
		"food", "食品", "drink", "饮料", "snack", "零食", "coffee", "咖啡", "tea", "茶叶",
	}},
	{"Sports & Outdoors", []string{
		"sport", "运动", "fitness", "健身", "outdoor", "户外", "camping", "露营",
		"bicycle", "自行车", "yoga", "瑜伽",
	}},
}

// Categorize returns the category label for a product given its name and
// description.
func Categorize(name, description string) string {
	text := strings.ToLower(name + " " + description)

	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(text, kw) {
				return c.label
			}
		}
	}
	return Other
}
