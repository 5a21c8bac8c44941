package catalog

import "github.com/kdimtricp/acholiflixx/internal/models"

const (
	RowFeatured      = "featured"
	RowTrending      = "trending"
	RowNewReleases   = "new-releases"
	RowDocumentaries = "documentaries"
	RowMusic         = "music"
)

// Rows lists the home page rows in display order.
var Rows = []struct {
	ID    string
	Title string
}{
	{RowTrending, "Trending Now"},
	{RowNewReleases, "New Releases"},
	{RowDocumentaries, "Documentaries"},
	{RowMusic, "Music & Performances"},
}

// Categories are the browse filters. Counts are filled in by Provider.Categories.
var Categories = []models.Category{
	{ID: "films", Name: "Films"},
	{ID: "documentaries", Name: "Documentaries"},
	{ID: "music", Name: "Music"},
	{ID: "culture", Name: "Culture"},
	{ID: "series", Name: "Series"},
	{ID: "animation", Name: "Animation"},
}

var featured = models.ContentItem{
	ID:          "featured-1",
	Title:       "The Last Kingdom of Acholi",
	Image:       "/images/hero-featured.jpg",
	Year:        "2024",
	Duration:    "1h 45m",
	Category:    "Documentaries",
	Description: "A powerful documentary exploring the rich history of the Acholi kingdom, from ancient traditions to modern-day cultural preservation. Follow the journey of elders as they share stories passed down through generations, revealing the wisdom and resilience of the Acholi people.",
	Row:         RowFeatured,
}

var sample = []models.ContentItem{
	{ID: "t1", Title: "Lak Tar", Image: "/images/lak-tar.jpg", Year: "2024", Duration: "1h 52m", Category: "Drama", Description: "A young teacher returns to Gulu and confronts the silence her family has kept for twenty years.", Row: RowTrending},
	{ID: "t2", Title: "Rwot Ker", Image: "/images/rwot-ker.jpg", Year: "2021", Duration: "2h 10m", Category: "Epic", Description: "The rise of a chief who united the clans along the Aswa river.", Row: RowTrending},
	{ID: "t3", Title: "Bwola Nights", Image: "/images/bwola-nights.jpg", Year: "2023", Duration: "48m", Category: "Culture", Description: "Royal dancers prepare for the biggest bwola performance of the decade.", Row: RowTrending},
	{ID: "t4", Title: "Pajule 1986", Image: "/images/pajule-1986.jpg", Year: "2019", Duration: "1h 38m", Category: "Historical", Description: "A village holds together through the hardest year of its history.", Row: RowTrending},
	{ID: "t5", Title: "Labongo and Gipir", Image: "/images/labongo-gipir.jpg", Year: "2022", Duration: "24m", Category: "Animation", Description: "The animated telling of the brothers, the spear and the bead.", Row: RowTrending},
	{ID: "n1", Title: "Kitgum Road", Image: "/images/kitgum-road.jpg", Year: "2025", Duration: "1h 41m", Category: "Drama", Description: "Two boda riders, one debt and a long night on the road north.", Row: RowNewReleases},
	{ID: "n2", Title: "Otole", Image: "/images/otole.jpg", Year: "2025", Duration: "1h 20m", Category: "Culture", Description: "The war dance as the last keepers of its steps remember it.", Row: RowNewReleases},
	{ID: "n3", Title: "Anyeko", Image: "/images/anyeko.jpg", Year: "2024", Duration: "45m", Category: "Series", Description: "Episode one: a market trader in Lira opens her own shop.", Row: RowNewReleases},
	{ID: "n4", Title: "Acholi Love Letters", Image: "/images/love-letters.jpg", Year: "unreleased", Duration: "1h 30m", Category: "Romance", Description: "Letters found in a Gulu attic connect two families.", Row: RowNewReleases},
	{ID: "n5", Title: "The Calabash", Image: "/images/calabash.jpg", Year: "2023", Duration: "1h 12m", Category: "Historical", Description: "An heirloom passes through five generations of one homestead.", Row: RowNewReleases},
	{ID: "d1", Title: "Voices of the Nile", Image: "/images/voices-nile.jpg", Year: "2022", Duration: "58m", Category: "Documentaries", Description: "Fishing communities along the Albert Nile in their own words.", Row: RowDocumentaries},
	{ID: "d2", Title: "Mato Oput", Image: "/images/mato-oput.jpg", Year: "2020", Duration: "1h 05m", Category: "Documentaries", Description: "The reconciliation ritual of drinking the bitter root, explained by elders.", Row: RowDocumentaries},
	{ID: "d3", Title: "Shea Gold", Image: "/images/shea-gold.jpg", Year: "2024", Duration: "42m", Category: "Documentaries", Description: "Women cooperatives turning shea nuts into a regional business.", Row: RowDocumentaries},
	{ID: "d4", Title: "Gulu Rising", Image: "/images/gulu-rising.jpg", Year: "2021", Duration: "1h 15m", Category: "Documentaries", Description: "A city rebuilds its schools, markets and music scene.", Row: RowDocumentaries},
	{ID: "m1", Title: "Larakaraka Live", Image: "/images/larakaraka-live.jpg", Year: "2024", Duration: "1h 02m", Category: "Music", Description: "A full concert of courtship songs recorded in Kitgum.", Row: RowMusic},
	{ID: "m2", Title: "Adungu Sessions", Image: "/images/adungu-sessions.jpg", Year: "2023", Duration: "35m", Category: "Music", Description: "Harp players from three generations trade songs.", Row: RowMusic},
	{ID: "m3", Title: "Lukeme Stories", Image: "/images/lukeme-stories.jpg", Year: "2022", Duration: "28m", Category: "Music", Description: "Thumb pianos, folk tales and the people who keep both alive.", Row: RowMusic},
	{ID: "m4", Title: "Northern Beats", Image: "/images/northern-beats.jpg", Year: "2025", Duration: "50m", Category: "Music", Description: "The new wave of Acholi hip hop, from studio to stage.", Row: RowMusic},
}

// SampleItems returns a copy of the static catalog, featured item first,
// with display positions assigned.
func SampleItems() []models.ContentItem {
	items := make([]models.ContentItem, 0, len(sample)+1)
	items = append(items, featured)
	items = append(items, sample...)
	for i := range items {
		items[i].Position = i
	}
	return items
}
