package seeders

import (
	"context"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/repositories"
)

func init() {
	Register("artworks", SeedArtworks)
}

// Gallery is the starter catalogue shown on the home and museum pages.
var Gallery = []models.Artwork{
	{
		Title:  "Heaven's Watchtower",
		Artist: "Aanya Singh",
		Price:  12500,
		Image:  "https://loyaltylobby.com/wp-content/uploads/2022/05/sky-g6ca2c3416_1280-PARIS.jpg",
	},
	{
		Title:  "Urban Bloom",
		Artist: "Rehan Yusuf",
		Price:  25000,
		Image:  "https://images.unsplash.com/photo-1499084732479-de2c02d45fcc?auto=format&fit=crop&w=1200&q=60",
	},
	{
		Title:  "The Beauty of Ocean",
		Artist: "Ancient Egypt",
		Year:   "1320 BC",
		Price:  1250000,
		Image:  "https://www.pixelstalk.net/wp-content/uploads/2016/07/3840x2160-Images-For-Desktop.jpg",
		Story:  "A royal crown believed to hold the spirit of the sun god Ra, symbolizing divine authority.",
	},
	{
		Title:  "Pathway to Paradise",
		Artist: "Roman Empire",
		Year:   "50 AD",
		Price:  980000,
		Image:  "https://wallpaperaccess.com/full/4723250.jpg",
		Story:  "Statue of a Roman soldier symbolizing courage, strength, and protection of the empire.",
	},
	{
		Title:  "Temple Elephant",
		Artist: "South India",
		Year:   "18th Century",
		Price:  675000,
		Image:  "https://images.unsplash.com/photo-1504608524841-42fe6f032b4b?auto=format&fit=crop&w=1200&q=60",
		Story:  "Hand-carved elephant sculpture representing wisdom, power, and royal heritage.",
	},
	{
		Title:  "Valley of Peace",
		Artist: "China Dynasty",
		Year:   "960 AD",
		Price:  860000,
		Image:  "https://img.freepik.com/premium-photo/best-amazing-wonderful-this-photo-take-this-picture-your-work-ai-generated-top-lovely-photo_1169327-87093.jpg",
		Story:  "Jade carving used in royal ceremonies signifying purity, eternity, and nobility.",
	},
	{
		Title:  "Whispering Woods Retreat",
		Artist: "African Tribal Art",
		Year:   "19th Century",
		Price:  720000,
		Image:  "https://img.freepik.com/premium-photo/top-best-photo-wonderful-amazing-this-photo-lovely-take-this-picture-your-work-ai-generated_1089151-8478.jpg",
		Story:  "Mask used during ceremonial rituals to inspire courage among warriors.",
	},
	{
		Title:  "Bridge to Heaven",
		Artist: "Japan",
		Year:   "1700 AD",
		Price:  1150000,
		Image:  "https://img.freepik.com/premium-photo/very-cool-peaceful_1026950-106072.jpg",
		Story:  "Katana sword symbolizing honor, loyalty, and the warrior code Bushido.",
	},
}

// SeedArtworks inserts the gallery catalogue. Titles already present are
// skipped, so running it twice is harmless.
func SeedArtworks(ctx context.Context, store *repositories.Store) error {
	existing, err := store.Artworks.All(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, a := range existing {
		have[a.Title] = true
	}

	for _, a := range Gallery {
		if have[a.Title] {
			continue
		}
		a := a
		if err := store.Artworks.Create(ctx, &a); err != nil {
			return err
		}
	}
	return nil
}
