package images

// Image pools are curated per category and emotion. URLs are bare (no display
// parameters); Select appends the display formatting query at the end.

// curatedScientific seeds the pool for scientific posts whose keywords touch
// mental health or physical activity.
var curatedScientific = []string{
	"https://images.unsplash.com/photo-1476480862126-209bfaa8edc8",
	"https://images.unsplash.com/photo-1506126613408-eca07ce68773",
	"https://images.unsplash.com/photo-1544367567-0f2fcb009e0b",
	"https://images.unsplash.com/photo-1552196563-55cd4e45efb3",
	"https://images.unsplash.com/photo-1499209974431-9dddcece7f88",
}

// wellnessHints are keyword fragments that mark a scientific post as
// mental-health or physical-activity themed.
var wellnessHints = []string{
	"mental", "stress", "anxi", "brain", "cerveau", "humeur", "mood",
	"walk", "marche", "run", "course", "exercise", "exercice", "sport",
	"bien-être", "wellbeing",
}

// categorySubPools maps a category to named sub-pools selected by keyword.
var categorySubPools = map[string]map[string][]string{
	"scientific": {
		"nature": {
			"https://images.unsplash.com/photo-1441974231531-c6227db76b6e",
			"https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05",
			"https://images.unsplash.com/photo-1447752875215-b2761acb3c5d",
		},
		"city": {
			"https://images.unsplash.com/photo-1449824913935-59a10b8d2000",
			"https://images.unsplash.com/photo-1480714378408-67cf0d13bc1b",
		},
		"science": {
			"https://images.unsplash.com/photo-1532094349884-543bc11b234d",
			"https://images.unsplash.com/photo-1507413245164-6160d8298b31",
		},
	},
	"route": {
		"forest": {
			"https://images.unsplash.com/photo-1448375240586-882707db888b",
			"https://images.unsplash.com/photo-1425913397330-cf8af2ff40a1",
		},
		"park": {
			"https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9",
			"https://images.unsplash.com/photo-1519331379826-f10be5486c6f",
		},
		"river": {
			"https://images.unsplash.com/photo-1437482078695-73f5ca6c96e2",
			"https://images.unsplash.com/photo-1505142468610-359e7d316be0",
		},
		"mountain": {
			"https://images.unsplash.com/photo-1464822759023-fed622ff2c3b",
			"https://images.unsplash.com/photo-1486870591958-9b9d0d1dda99",
		},
	},
	"event": {
		"race": {
			"https://images.unsplash.com/photo-1452626038306-9aae5e071dd3",
			"https://images.unsplash.com/photo-1486218119243-13883505764c",
		},
		"festival": {
			"https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3",
			"https://images.unsplash.com/photo-1472653431158-6364773b2a56",
		},
		"group": {
			"https://images.unsplash.com/photo-1571008887538-b36bb32f4571",
			"https://images.unsplash.com/photo-1547483238-f400e65ccd56",
		},
	},
}

// categoryDefaults is the fallback pool per category when no sub-pool keyword
// matches.
var categoryDefaults = map[string][]string{
	"scientific": {
		"https://images.unsplash.com/photo-1506126613408-eca07ce68773",
		"https://images.unsplash.com/photo-1441974231531-c6227db76b6e",
		"https://images.unsplash.com/photo-1532094349884-543bc11b234d",
	},
	"route": {
		"https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9",
		"https://images.unsplash.com/photo-1448375240586-882707db888b",
		"https://images.unsplash.com/photo-1505142468610-359e7d316be0",
	},
	"event": {
		"https://images.unsplash.com/photo-1452626038306-9aae5e071dd3",
		"https://images.unsplash.com/photo-1571008887538-b36bb32f4571",
	},
}

// emotionPools adds mood-tinted imagery on top of the category pool.
var emotionPools = map[string][]string{
	"HAPPY": {
		"https://images.unsplash.com/photo-1502082553048-f009c37129b9",
		"https://images.unsplash.com/photo-1472214103451-9374bd1c798e",
	},
	"SAD": {
		"https://images.unsplash.com/photo-1428908728789-d2de25dbd4e2",
		"https://images.unsplash.com/photo-1475924156734-496f6cac6ec1",
	},
	"STRESSED": {
		"https://images.unsplash.com/photo-1474418397713-7ede21d49118",
		"https://images.unsplash.com/photo-1518241353330-0f7941c2d9b5",
	},
	"ANXIOUS": {
		"https://images.unsplash.com/photo-1476231682828-37e571bc172f",
		"https://images.unsplash.com/photo-1493246507139-91e8fad9978e",
	},
	"TIRED": {
		"https://images.unsplash.com/photo-1470252649378-9c29740c9fa8",
	},
	"CALM": {
		"https://images.unsplash.com/photo-1439853949127-fa647821eba0",
	},
	"EXCITED": {
		"https://images.unsplash.com/photo-1533130061792-64b345e4a833",
	},
}

// brandBlacklist rejects any URL that carries a brand/trademark fragment.
// Guardrail against AI-chosen branded imagery slipping into the feed.
var brandBlacklist = []string{
	"starbucks", "nike", "mcdonalds", "adidas", "cocacola", "coca-cola",
	"pepsi", "redbull", "burgerking", "decathlon-logo",
}

// guaranteedSafe is the last-resort pool: always brand-free, always usable.
var guaranteedSafe = []string{
	"https://images.unsplash.com/photo-1441974231531-c6227db76b6e",
	"https://images.unsplash.com/photo-1506126613408-eca07ce68773",
	"https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9",
	"https://images.unsplash.com/photo-1452626038306-9aae5e071dd3",
}

// displayParams is the fixed display-formatting query appended to every
// returned URL.
const displayParams = "auto=format&fit=crop&w=800&q=70"

// AllCuratedURLs returns every distinct URL across the pools, for offline
// accessibility audits.
func AllCuratedURLs() []string {
	seen := make(map[string]struct{})
	var urls []string
	add := func(pool []string) {
		for _, u := range pool {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}

	add(curatedScientific)
	for _, subPools := range categorySubPools {
		for _, pool := range subPools {
			add(pool)
		}
	}
	for _, pool := range categoryDefaults {
		add(pool)
	}
	for _, pool := range emotionPools {
		add(pool)
	}
	add(guaranteedSafe)
	return urls
}
