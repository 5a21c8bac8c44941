package catalog

import "github.com/kdimtricp/acholiflixx/internal/models"

const detailsTail = " This compelling production takes viewers on an unforgettable journey through the heart of Acholi culture, showcasing the resilience, traditions, and spirit of the people. Through stunning cinematography and authentic storytelling, experience the rich tapestry of Northern Uganda like never before."

// Details expands an item with the watch page extras. The sample catalog
// carries no credits, so every title shares the house production credits.
func Details(item models.ContentItem) models.ContentDetails {
	category := item.Category
	if category == "" {
		category = "Drama"
	}
	release := item.Year
	if release == "" {
		release = "2024"
	}

	genres := []string{category, "Cultural", "African Cinema"}
	if item.Row == RowFeatured {
		genres = []string{category, "Cultural", "History"}
	}

	return models.ContentDetails{
		ContentItem:     item,
		FullDescription: item.Description + detailsTail,
		Director:        "Okello James",
		Cast:            []string{"Auma Grace", "Onen David", "Lakot Sarah", "Ocen Patrick"},
		Language:        "Luo (Acholi)",
		Subtitles:       []string{"English", "Swahili", "French"},
		ReleaseDate:     release,
		Rating:          "PG-13",
		Genres:          genres,
	}
}
