package stream

import "strings"

// Catalog is the static sample music library. A real deployment would back
// this with a provider API; the demo serves a fixed set so the app works
// without any external account.
type Catalog struct {
	featured []Song
	trending []Song
}

func (c *Catalog) Featured() []Song { return c.featured }
func (c *Catalog) Trending() []Song { return c.trending }

// Search matches a case-insensitive substring against title, artist and
// album across the whole catalog.
func (c *Catalog) Search(query string) []Song {
	q := strings.ToLower(query)
	results := []Song{}
	for _, sg := range c.all() {
		if strings.Contains(strings.ToLower(sg.Title), q) ||
			strings.Contains(strings.ToLower(sg.Artist), q) ||
			strings.Contains(strings.ToLower(sg.Album), q) {
			results = append(results, sg)
		}
	}
	return results
}

func (c *Catalog) ByID(id string) (Song, bool) {
	for _, sg := range c.all() {
		if sg.ID == id {
			return sg, true
		}
	}
	return Song{}, false
}

func (c *Catalog) all() []Song {
	all := make([]Song, 0, len(c.featured)+len(c.trending))
	all = append(all, c.featured...)
	all = append(all, c.trending...)
	return all
}

func NewSampleCatalog() *Catalog {
	return &Catalog{
		featured: []Song{
			{
				ID:         "1",
				Title:      "Blinding Lights",
				Artist:     "The Weeknd",
				Album:      "After Hours",
				Duration:   200,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?w=300&h=300&fit=crop",
			},
			{
				ID:         "2",
				Title:      "Shape of You",
				Artist:     "Ed Sheeran",
				Album:      "÷ (Divide)",
				Duration:   234,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=300&h=300&fit=crop",
			},
			{
				ID:         "3",
				Title:      "Levitating",
				Artist:     "Dua Lipa",
				Album:      "Future Nostalgia",
				Duration:   203,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?w=300&h=300&fit=crop",
			},
			{
				ID:         "4",
				Title:      "Watermelon Sugar",
				Artist:     "Harry Styles",
				Album:      "Fine Line",
				Duration:   174,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1514320291840-2e0a9bf2a9ae?w=300&h=300&fit=crop",
			},
			{
				ID:         "5",
				Title:      "Good 4 U",
				Artist:     "Olivia Rodrigo",
				Album:      "SOUR",
				Duration:   178,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-5.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1510915361894-db8b60106cb1?w=300&h=300&fit=crop",
			},
			{
				ID:         "6",
				Title:      "Peaches",
				Artist:     "Justin Bieber ft. Daniel Caesar, Giveon",
				Album:      "Justice",
				Duration:   198,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-6.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1487180144351-b8472da7d491?w=300&h=300&fit=crop",
			},
			{
				ID:         "7",
				Title:      "Montero (Call Me By Your Name)",
				Artist:     "Lil Nas X",
				Album:      "MONTERO",
				Duration:   137,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-7.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1508700115892-45ecd05ae2ad?w=300&h=300&fit=crop",
			},
			{
				ID:         "8",
				Title:      "Save Your Tears",
				Artist:     "The Weeknd",
				Album:      "After Hours",
				Duration:   215,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-8.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=300&h=300&fit=crop",
			},
		},
		trending: []Song{
			{
				ID:         "9",
				Title:      "Heat Waves",
				Artist:     "Glass Animals",
				Album:      "Dreamland",
				Duration:   238,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-9.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1459749411175-04bf5292ceea?w=300&h=300&fit=crop",
			},
			{
				ID:         "10",
				Title:      "Stay",
				Artist:     "The Kid LAROI & Justin Bieber",
				Album:      "F*CK LOVE 3+",
				Duration:   141,
				PreviewURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-10.mp3",
				ImageURL:   "https://images.unsplash.com/photo-1511379938547-c1f69419868d?w=300&h=300&fit=crop",
			},
		},
	}
}
