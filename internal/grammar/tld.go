package grammar

import "strings"

// Generalized and country-code top level domains. The lists are reference
// input data (IANA), consumed as-is: a URL candidate written without a
// protocol is only extracted when its final label appears here, so that
// prose like "badly.punctuated,sentence" never turns into a link.

var gTLDs = makeSet(
	"academy", "accountant", "active", "adult", "aero", "agency", "app",
	"army", "art", "asia", "associates", "attorney", "auction", "audio",
	"autos", "band", "bar", "bargains", "beer", "best", "bid", "bike",
	"bingo", "bio", "biz", "black", "blog", "blue", "boutique", "build",
	"builders", "business", "buzz", "cab", "cafe", "camera", "camp",
	"capital", "cards", "care", "careers", "cash", "casino", "cat",
	"catering", "center", "ceo", "charity", "chat", "cheap", "church",
	"city", "claims", "cleaning", "click", "clinic", "clothing", "cloud",
	"club", "coach", "codes", "coffee", "college", "community", "company",
	"computer", "condos", "construction", "consulting", "contact",
	"contractors", "cooking", "cool", "coop", "country", "coupons",
	"courses", "credit", "cricket", "cruises", "dance", "date", "dating",
	"deals", "degree", "delivery", "democrat", "dental", "dentist",
	"design", "dev", "diamonds", "diet", "digital", "direct", "directory",
	"discount", "doctor", "dog", "domains", "download", "earth",
	"education", "edu", "email", "energy", "engineer", "engineering",
	"enterprises", "equipment", "estate", "events", "exchange", "expert",
	"exposed", "express", "fail", "faith", "family", "fan", "fans", "farm",
	"fashion", "finance", "financial", "fish", "fishing", "fit", "fitness",
	"flights", "florist", "flowers", "football", "forsale", "foundation",
	"fun", "fund", "furniture", "futbol", "fyi", "gallery", "game",
	"games", "garden", "gift", "gifts", "gives", "glass", "global", "gold",
	"golf", "gov", "graphics", "gratis", "green", "gripe", "group",
	"guide", "guitars", "guru", "haus", "health", "healthcare", "help",
	"hiphop", "hockey", "holdings", "holiday", "homes", "horse", "hospital",
	"host", "hosting", "house", "how", "info", "ink", "institute",
	"insurance", "insure", "int", "international", "investments", "jewelry",
	"jobs", "kitchen", "land", "lawyer", "lease", "legal", "life",
	"lighting", "limited", "limo", "link", "live", "loan", "loans", "lol",
	"love", "ltd", "luxury", "management", "market", "marketing", "markets",
	"mba", "media", "medical", "memorial", "men", "menu", "mil", "mobi",
	"moda", "moe", "money", "mortgage", "movie", "museum", "name", "net",
	"network", "news", "ninja", "one", "onl", "online", "org",
	"organic", "page", "partners", "parts", "party", "pet", "pharmacy",
	"photo", "photography", "photos", "pics", "pictures", "pink", "pizza",
	"place", "plumbing", "plus", "poker", "porn", "post", "press", "pro",
	"productions", "properties", "property", "pub", "racing", "recipes",
	"red", "rehab", "rent", "rentals", "repair", "report", "republican",
	"rest", "restaurant", "review", "reviews", "rip", "rocks", "rodeo",
	"run", "sale", "salon", "school", "science", "services", "sex", "sexy",
	"shoes", "shop", "shopping", "show", "singles", "site", "ski", "soccer",
	"social", "software", "solar", "solutions", "space", "sport", "store",
	"stream", "studio", "study", "style", "sucks", "supplies", "supply",
	"support", "surf", "surgery", "systems", "tattoo", "tax", "taxi",
	"team", "tech", "technology", "tel", "tennis", "theater", "tips",
	"tires", "today", "tools", "top", "tours", "town", "toys", "trade",
	"training", "travel", "tube", "university", "vacations", "ventures",
	"vet", "video", "villas", "vin", "vip", "vision", "vodka", "vote",
	"voyage", "watch", "webcam", "website", "wedding", "wiki", "win",
	"wine", "work", "works", "world", "wtf", "xxx", "xyz", "yoga", "zone",
	"com",
)

var ccTLDs = makeSet(
	"ac", "ad", "ae", "af", "ag", "ai", "al", "am", "an", "ao", "aq", "ar",
	"as", "at", "au", "aw", "ax", "az", "ba", "bb", "bd", "be", "bf", "bg",
	"bh", "bi", "bj", "bl", "bm", "bn", "bo", "bq", "br", "bs", "bt", "bv",
	"bw", "by", "bz", "ca", "cc", "cd", "cf", "cg", "ch", "ci", "ck", "cl",
	"cm", "cn", "co", "cr", "cu", "cv", "cw", "cx", "cy", "cz", "de", "dj",
	"dk", "dm", "do", "dz", "ec", "ee", "eg", "eh", "er", "es", "et", "eu",
	"fi", "fj", "fk", "fm", "fo", "fr", "ga", "gb", "gd", "ge", "gf", "gg",
	"gh", "gi", "gl", "gm", "gn", "gp", "gq", "gr", "gs", "gt", "gu", "gw",
	"gy", "hk", "hm", "hn", "hr", "ht", "hu", "id", "ie", "il", "im", "in",
	"io", "iq", "ir", "is", "it", "je", "jm", "jo", "jp", "ke", "kg", "kh",
	"ki", "km", "kn", "kp", "kr", "kw", "ky", "kz", "la", "lb", "lc", "li",
	"lk", "lr", "ls", "lt", "lu", "lv", "ly", "ma", "mc", "md", "me", "mf",
	"mg", "mh", "mk", "ml", "mm", "mn", "mo", "mp", "mq", "mr", "ms", "mt",
	"mu", "mv", "mw", "mx", "my", "mz", "na", "nc", "ne", "nf", "ng", "ni",
	"nl", "no", "np", "nr", "nu", "nz", "om", "pa", "pe", "pf", "pg", "ph",
	"pk", "pl", "pm", "pn", "pr", "ps", "pt", "pw", "py", "qa", "re", "ro",
	"rs", "ru", "rw", "sa", "sb", "sc", "sd", "se", "sg", "sh", "si", "sj",
	"sk", "sl", "sm", "sn", "so", "sr", "ss", "st", "su", "sv", "sx", "sy",
	"sz", "tc", "td", "tf", "tg", "th", "tj", "tk", "tl", "tm", "tn", "to",
	"tp", "tr", "tt", "tv", "tw", "tz", "ua", "ug", "uk", "um", "us", "uy",
	"uz", "va", "vc", "ve", "vg", "vi", "vn", "vu", "wf", "ws", "ye", "yt",
	"za", "zm", "zw",
)

func makeSet(labels ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// ValidTLD reports whether label is an acceptable top level domain for a URL
// candidate. Punycode labels are accepted structurally; everything else must
// appear in the gTLD or ccTLD tables.
func ValidTLD(label string) bool {
	label = strings.ToLower(label)
	if strings.HasPrefix(label, "xn--") && len(label) > 4 {
		return true
	}
	if _, ok := gTLDs[label]; ok {
		return true
	}
	_, ok := ccTLDs[label]
	return ok
}
