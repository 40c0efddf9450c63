package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// Safety classifies the health profile of an additive.
type Safety string

const (
	SafetySafe     Safety = "safe"
	SafetyModerate Safety = "moderate"
	SafetyCaution  Safety = "caution"
	SafetyAvoid    Safety = "avoid"
)

// Additive describes a food additive by its E-number.
type Additive struct {
	ENumber       string `json:"e_number"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Safety        Safety `json:"safety"`
	Note          string `json:"note"`
	FoundAs       string `json:"found_as,omitempty"`
	Controversial bool   `json:"controversial"`
}

// eNumbers is the additive reference table. Keys are canonical
// E-numbers (uppercase E, lowercase suffix letter).
var eNumbers = map[string]Additive{
	// colors
	"E100":  {Name: "Curcumin", Category: "Color", Safety: SafetySafe, Note: "Natural yellow color from turmeric"},
	"E101":  {Name: "Riboflavin", Category: "Color", Safety: SafetySafe, Note: "Vitamin B2, natural yellow color"},
	"E102":  {Name: "Tartrazine", Category: "Color", Safety: SafetyCaution, Note: "Synthetic yellow dye, may cause hyperactivity in children"},
	"E104":  {Name: "Quinoline Yellow", Category: "Color", Safety: SafetyCaution, Note: "Synthetic yellow dye, may cause allergic reactions"},
	"E110":  {Name: "Sunset Yellow", Category: "Color", Safety: SafetyCaution, Note: "Synthetic orange dye, linked to hyperactivity"},
	"E120":  {Name: "Cochineal", Category: "Color", Safety: SafetyModerate, Note: "Natural red color from insects, may cause allergies"},
	"E122":  {Name: "Azorubine", Category: "Color", Safety: SafetyCaution, Note: "Synthetic red dye, may cause hyperactivity"},
	"E123":  {Name: "Amaranth", Category: "Color", Safety: SafetyAvoid, Note: "Synthetic red dye, banned in some countries"},
	"E124":  {Name: "Ponceau 4R", Category: "Color", Safety: SafetyCaution, Note: "Synthetic red dye, may cause hyperactivity"},
	"E129":  {Name: "Allura Red", Category: "Color", Safety: SafetyCaution, Note: "Synthetic red dye, may cause hyperactivity"},
	"E133":  {Name: "Brilliant Blue", Category: "Color", Safety: SafetySafe, Note: "Synthetic blue dye, generally safe"},
	"E140":  {Name: "Chlorophyll", Category: "Color", Safety: SafetySafe, Note: "Natural green color from plants"},
	"E150a": {Name: "Caramel I", Category: "Color", Safety: SafetySafe, Note: "Plain caramel, natural brown color"},
	"E150d": {Name: "Caramel IV", Category: "Color", Safety: SafetyModerate, Note: "Sulfite ammonia caramel"},
	"E160a": {Name: "Beta-carotene", Category: "Color", Safety: SafetySafe, Note: "Natural orange color, vitamin A precursor"},
	"E160b": {Name: "Annatto", Category: "Color", Safety: SafetySafe, Note: "Natural orange-red color from seeds"},
	"E162":  {Name: "Beetroot Red", Category: "Color", Safety: SafetySafe, Note: "Natural red color from beetroot"},
	"E163":  {Name: "Anthocyanins", Category: "Color", Safety: SafetySafe, Note: "Natural purple and red colors from fruits"},
	"E171":  {Name: "Titanium Dioxide", Category: "Color", Safety: SafetyCaution, Note: "White color, potential health concerns"},

	// preservatives
	"E200": {Name: "Sorbic Acid", Category: "Preservative", Safety: SafetySafe, Note: "Natural preservative, antimicrobial"},
	"E202": {Name: "Potassium Sorbate", Category: "Preservative", Safety: SafetySafe, Note: "Salt of sorbic acid, widely used preservative"},
	"E210": {Name: "Benzoic Acid", Category: "Preservative", Safety: SafetyModerate, Note: "Preservative, may cause allergic reactions"},
	"E211": {Name: "Sodium Benzoate", Category: "Preservative", Safety: SafetyModerate, Note: "Common preservative, may form benzene with vitamin C"},
	"E220": {Name: "Sulfur Dioxide", Category: "Preservative", Safety: SafetyCaution, Note: "Preservative, may cause asthma attacks"},
	"E223": {Name: "Sodium Metabisulfite", Category: "Preservative", Safety: SafetyCaution, Note: "Preservative, may cause severe allergic reactions"},
	"E230": {Name: "Biphenyl", Category: "Preservative", Safety: SafetyAvoid, Note: "Fungicide, potential carcinogen"},
	"E235": {Name: "Natamycin", Category: "Preservative", Safety: SafetySafe, Note: "Natural antifungal agent"},
	"E249": {Name: "Potassium Nitrite", Category: "Preservative", Safety: SafetyCaution, Note: "Meat preservative, may form nitrosamines"},
	"E250": {Name: "Sodium Nitrite", Category: "Preservative", Safety: SafetyCaution, Note: "Meat preservative, potential carcinogen risk"},
	"E251": {Name: "Sodium Nitrate", Category: "Preservative", Safety: SafetyCaution, Note: "Meat preservative, converts to nitrite"},
	"E260": {Name: "Acetic Acid", Category: "Preservative", Safety: SafetySafe, Note: "Vinegar, natural preservative"},
	"E270": {Name: "Lactic Acid", Category: "Preservative", Safety: SafetySafe, Note: "Natural acid, preservative and flavor enhancer"},
	"E282": {Name: "Calcium Propionate", Category: "Preservative", Safety: SafetySafe, Note: "Common bread preservative"},

	// antioxidants
	"E300": {Name: "Ascorbic Acid", Category: "Antioxidant", Safety: SafetySafe, Note: "Vitamin C, natural antioxidant"},
	"E306": {Name: "Mixed Tocopherols", Category: "Antioxidant", Safety: SafetySafe, Note: "Natural vitamin E, excellent antioxidant"},
	"E310": {Name: "Propyl Gallate", Category: "Antioxidant", Safety: SafetyCaution, Note: "Synthetic antioxidant, may cause allergic reactions"},
	"E320": {Name: "BHA", Category: "Antioxidant", Safety: SafetyAvoid, Note: "Butylated hydroxyanisole, potential carcinogen"},
	"E321": {Name: "BHT", Category: "Antioxidant", Safety: SafetyAvoid, Note: "Butylated hydroxytoluene, potential health risks"},
	"E322": {Name: "Lecithin", Category: "Antioxidant", Safety: SafetySafe, Note: "Natural emulsifier and antioxidant"},
	"E330": {Name: "Citric Acid", Category: "Antioxidant", Safety: SafetySafe, Note: "Natural acid from citrus fruits"},

	// thickeners, emulsifiers, sweeteners
	"E407": {Name: "Carrageenan", Category: "Thickener", Safety: SafetyModerate, Note: "Natural thickener, may cause digestive issues"},
	"E410": {Name: "Locust Bean Gum", Category: "Thickener", Safety: SafetySafe, Note: "Natural thickener from carob seeds"},
	"E412": {Name: "Guar Gum", Category: "Thickener", Safety: SafetySafe, Note: "Natural thickener from guar beans"},
	"E415": {Name: "Xanthan Gum", Category: "Thickener", Safety: SafetySafe, Note: "Microbial thickener, widely used"},
	"E420": {Name: "Sorbitol", Category: "Sweetener", Safety: SafetyModerate, Note: "Sugar alcohol, may cause digestive issues"},
	"E421": {Name: "Mannitol", Category: "Sweetener", Safety: SafetyModerate, Note: "Sugar alcohol, laxative effect"},
	"E440": {Name: "Pectin", Category: "Thickener", Safety: SafetySafe, Note: "Natural gelling agent from fruits"},
	"E466": {Name: "Carboxymethylcellulose", Category: "Thickener", Safety: SafetySafe, Note: "Modified cellulose, widely used"},
	"E471": {Name: "Mono- and Diglycerides", Category: "Emulsifier", Safety: SafetySafe, Note: "Common emulsifier from fats"},

	// flavor enhancers and sweeteners
	"E621": {Name: "Monosodium Glutamate", Category: "Flavor Enhancer", Safety: SafetyModerate, Note: "MSG, may cause sensitivity reactions"},
	"E951": {Name: "Aspartame", Category: "Sweetener", Safety: SafetyCaution, Note: "Artificial sweetener, contested safety profile"},
	"E950": {Name: "Acesulfame K", Category: "Sweetener", Safety: SafetyModerate, Note: "Artificial sweetener"},
	"E955": {Name: "Sucralose", Category: "Sweetener", Safety: SafetyModerate, Note: "Artificial sweetener"},
}

// controversial additives draw an extra penalty on top of their
// safety class.
var controversial = map[string]bool{
	"E102": true, "E104": true, "E110": true, "E122": true,
	"E123": true, "E124": true, "E129": true, "E171": true,
	"E211": true, "E250": true, "E251": true,
	"E320": true, "E321": true, "E621": true, "E951": true,
}

// commonNames maps ingredient-list names to their E-numbers for
// products that spell additives out instead of numbering them.
var commonNames = map[string]string{
	"monosodium glutamate": "E621",
	"msg":                  "E621",
	"aspartame":            "E951",
	"sucralose":            "E955",
	"acesulfame":           "E950",
	"sodium benzoate":      "E211",
	"potassium sorbate":    "E202",
	"sodium nitrite":       "E250",
	"sodium nitrate":       "E251",
	"citric acid":          "E330",
	"ascorbic acid":        "E300",
	"xanthan gum":          "E415",
	"guar gum":             "E412",
	"carrageenan":          "E407",
	"pectin":               "E440",
	"lecithin":             "E322",
	"tartrazine":           "E102",
	"titanium dioxide":     "E171",
	"carboxymethylcellulose": "E466",
}

// Matches E-numbers as written on labels: "E330", "e 150a", "E-471".
var eNumberPattern = regexp.MustCompile(`(?i)\bE[\s-]?(\d{3,4})([a-e])?\b`)

// AdditiveReport summarizes the additives found in an ingredients list.
type AdditiveReport struct {
	Additives     []Additive     `json:"additives"`
	Total         int            `json:"total"`
	SafetySummary map[Safety]int `json:"safety_summary"`
	Controversial int            `json:"controversial"`
	ImpactScore   int            `json:"impact_score"` // 0-100, 100 = clean
}

// AnalyzeAdditives extracts known additives from ingredients text, by
// E-number and by common name, and scores their aggregate impact.
func AnalyzeAdditives(ingredients string) AdditiveReport {
	report := AdditiveReport{
		SafetySummary: map[Safety]int{},
		ImpactScore:   100,
	}
	if ingredients == "" {
		return report
	}
	lower := strings.ToLower(ingredients)
	seen := map[string]bool{}

	add := func(eNumber, foundAs string) {
		info, ok := eNumbers[eNumber]
		if !ok || seen[eNumber] {
			return
		}
		seen[eNumber] = true
		info.ENumber = eNumber
		info.FoundAs = foundAs
		info.Controversial = controversial[eNumber]
		report.Additives = append(report.Additives, info)
	}

	for _, m := range eNumberPattern.FindAllStringSubmatch(ingredients, -1) {
		eNumber := "E" + m[1] + strings.ToLower(m[2])
		add(eNumber, eNumber)
	}
	// Map iteration order varies between runs; sort the common-name
	// matches so the report is stable.
	var byName []struct{ name, eNumber string }
	for name, eNumber := range commonNames {
		if strings.Contains(lower, name) {
			byName = append(byName, struct{ name, eNumber string }{name, eNumber})
		}
	}
	sort.Slice(byName, func(i, j int) bool {
		if byName[i].eNumber != byName[j].eNumber {
			return byName[i].eNumber < byName[j].eNumber
		}
		return byName[i].name < byName[j].name
	})
	for _, m := range byName {
		add(m.eNumber, m.name)
	}

	for _, a := range report.Additives {
		report.SafetySummary[a.Safety]++
		if a.Controversial {
			report.Controversial++
		}
	}
	report.Total = len(report.Additives)
	report.ImpactScore = impactScore(report.SafetySummary, report.Controversial)
	return report
}

// impactScore deducts from 100 per additive by safety class, with an
// extra penalty for controversial ones, clamped to [0,100].
func impactScore(summary map[Safety]int, controversialCount int) int {
	s := 100
	s -= summary[SafetyAvoid] * 20
	s -= summary[SafetyCaution] * 10
	s -= summary[SafetyModerate] * 5
	s -= controversialCount * 5
	if s < 0 {
		return 0
	}
	return s
}

// AdditiveRecommendations turns a report into user-facing advice.
func AdditiveRecommendations(r AdditiveReport) []string {
	var recs []string
	if r.Controversial > 0 {
		recs = append(recs, "Consider products with fewer artificial additives")
	}
	if r.SafetySummary[SafetyAvoid] > 0 {
		recs = append(recs, "Look for alternatives without potentially harmful additives")
	}
	if r.SafetySummary[SafetyCaution] > 2 {
		recs = append(recs, "This product contains multiple additives that may cause sensitivities")
	}
	if r.Total > 10 {
		recs = append(recs, "Consider less processed alternatives with fewer additives")
	}
	if r.ImpactScore < 70 {
		recs = append(recs, "Choose products with cleaner ingredient lists when possible")
	}
	if len(recs) == 0 {
		recs = append(recs, "This product has a relatively clean additive profile")
	}
	return recs
}
