package models

// WeeklyContent is the per-week summary shown on the weekly screen.
type WeeklyContent struct {
	Week            int
	Size            string
	BabyDevelopment string
	MomBody         string
	Checklist       []string
}

const (
	firstContentWeek = 4
	lastContentWeek  = 42
)

type weekSize struct {
	size string
	dev  string
}

// Sizes follow the common fruit comparisons used in prenatal guides.
var weekSizes = map[int]weekSize{
	4:  {"Poppy Seed", "The embryo implants and the placenta starts forming."},
	5:  {"Sesame Seed", "The neural tube, future brain and spine, is developing."},
	6:  {"Lentil", "A heartbeat can often be seen on ultrasound."},
	7:  {"Blueberry", "Arm and leg buds are growing."},
	8:  {"Raspberry", "Fingers and toes begin to form."},
	9:  {"Cherry", "Essential organs have begun to develop."},
	10: {"Strawberry", "Vital organs are in place and starting to function."},
	11: {"Lime", "Bones are beginning to harden."},
	12: {"Plum", "Reflexes develop; baby may open and close fingers."},
	13: {"Peach", "Vocal cords are forming."},
	14: {"Lemon", "Fingerprints are forming."},
	15: {"Apple", "Baby can sense light through closed eyelids."},
	16: {"Avocado", "Facial muscles allow expressions like squinting."},
	17: {"Pear", "Fat stores begin to develop under the skin."},
	18: {"Bell Pepper", "Ears are in position and baby may hear sounds."},
	19: {"Mango", "A protective coating called vernix covers the skin."},
	20: {"Banana", "Halfway there! Baby is swallowing and practicing digestion."},
	21: {"Carrot", "Movements become stronger and more coordinated."},
	22: {"Papaya", "Eyebrows and eyelids are fully formed."},
	23: {"Grapefruit", "Hearing is sharpening; baby recognizes your voice."},
	24: {"Cantaloupe", "Lungs are developing branches and surfactant cells."},
	25: {"Cauliflower", "Baby is gaining fat and skin is smoothing out."},
	26: {"Lettuce", "Eyes begin to open."},
	27: {"Cabbage", "Brain activity is increasing rapidly."},
	28: {"Eggplant", "Baby can blink and may have regular sleep cycles."},
	29: {"Butternut Squash", "Muscles and lungs continue to mature."},
	30: {"Cucumber", "Bone marrow is taking over red blood cell production."},
	31: {"Coconut", "All five senses are working."},
	32: {"Jicama", "Baby is practicing breathing movements."},
	33: {"Pineapple", "The immune system is strengthening."},
	34: {"Cantaloupe", "The central nervous system is maturing."},
	35: {"Honeydew", "Kidneys are fully developed."},
	36: {"Romaine Lettuce", "Baby is shedding most of the fine body hair."},
	37: {"Swiss Chard", "Baby is considered early term."},
	38: {"Leek", "Organs are ready for life outside the womb."},
	39: {"Mini Watermelon", "Baby is full term and building fat."},
	40: {"Small Pumpkin", "Due date week! Baby is ready to meet you."},
	41: {"Watermelon", "Late term; your provider may discuss monitoring."},
	42: {"Jackfruit", "Your provider will likely discuss induction."},
}

var trimesterBody = map[int]string{
	1: "Fatigue, nausea and tender breasts are common as hormones surge.",
	2: "You might be feeling more energy as you enter the second trimester.",
	3: "Backaches, swelling and practice contractions may appear as baby grows.",
}

// WeeklyContentFor returns the content for week, clamped to the table.
func WeeklyContentFor(week int) WeeklyContent {
	lookup := week
	if lookup < firstContentWeek {
		lookup = firstContentWeek
	}
	if lookup > lastContentWeek {
		lookup = lastContentWeek
	}
	size := weekSizes[lookup]

	checklist := []string{
		"Check your Timeline for upcoming appointments.",
		"Stay hydrated!",
	}
	if week >= 32 && week <= 36 {
		checklist = append(checklist, "Pack your hospital bag.")
	}
	if week >= 28 {
		checklist = append(checklist, "Do your daily kick counts.")
	}

	return WeeklyContent{
		Week:            week,
		Size:            size.size,
		BabyDevelopment: size.dev,
		MomBody:         trimesterBody[Trimester(week)],
		Checklist:       checklist,
	}
}

// PartnerTip is one suggestion on the partner card.
type PartnerTip struct {
	Title       string
	Description string
}

// PartnerTips are the three things a partner can do today.
var PartnerTips = []PartnerTip{
	{Title: "Litter Box Duty", Description: "Toxoplasmosis risk is real. Please take over this chore entirely."},
	{Title: "Foot Rub", Description: "Edema (swelling) is common. A 5-minute foot rub helps circulation."},
	{Title: "Hydration Patrol", Description: "Ensure she has a full water bottle within reach at all times."},
}

// GoBagItem is one entry on the hospital bag checklist.
type GoBagItem struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Checked  bool   `json:"checked"`
}

// GoBagPackByWeek is the target week for a packed bag.
const GoBagPackByWeek = 36

// GoBagCategories lists checklist sections in display order.
var GoBagCategories = []string{"Essentials", "Comfort", "Baby"}

// DefaultGoBag returns a fresh, unchecked checklist.
func DefaultGoBag() []GoBagItem {
	return []GoBagItem{
		{ID: 1, Category: "Essentials", Text: "ID & Insurance Card"},
		{ID: 2, Category: "Essentials", Text: "Phone Charger (Long Cord)"},
		{ID: 3, Category: "Essentials", Text: "Car Seat Installed"},
		{ID: 4, Category: "Comfort", Text: "Robe & Slippers"},
		{ID: 5, Category: "Comfort", Text: "Toiletries"},
		{ID: 6, Category: "Comfort", Text: "Nursing Bra"},
		{ID: 7, Category: "Comfort", Text: "Snacks"},
		{ID: 8, Category: "Baby", Text: "Going Home Outfit"},
		{ID: 9, Category: "Baby", Text: "Blanket"},
	}
}

// OrderGoBag returns items grouped by GoBagCategories, preserving the order
// within each category. Unknown categories are appended last.
func OrderGoBag(items []GoBagItem) []GoBagItem {
	out := make([]GoBagItem, 0, len(items))
	known := make(map[string]bool, len(GoBagCategories))
	for _, category := range GoBagCategories {
		known[category] = true
		for _, item := range items {
			if item.Category == category {
				out = append(out, item)
			}
		}
	}
	for _, item := range items {
		if !known[item.Category] {
			out = append(out, item)
		}
	}
	return out
}
