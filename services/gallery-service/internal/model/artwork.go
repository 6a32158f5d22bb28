package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ArtworkStatus is the availability of an artwork.
type ArtworkStatus string

const (
	ArtworkStatusAvailable ArtworkStatus = "available"
	ArtworkStatusOnHold    ArtworkStatus = "on_hold"
	ArtworkStatusOnExhibit ArtworkStatus = "on_exhibit"
	ArtworkStatusSold      ArtworkStatus = "sold"
)

// Artwork is a listing owned by an artist.
type Artwork struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	Title           string        `bson:"title"`
	Description     string        `bson:"description,omitempty"`
	Thumbnail       string        `bson:"thumbnail,omitempty"`
	Images          []string      `bson:"images"`
	Size            string        `bson:"size"`
	Media           string        `bson:"media,omitempty"`
	PrintNumber     string        `bson:"print_number,omitempty"`
	InventoryNumber string        `bson:"inventory_number,omitempty"`
	Status          ArtworkStatus `bson:"status"`
	Price           *float64      `bson:"price,omitempty"`
	Location        string        `bson:"location,omitempty"`
	Notes           string        `bson:"notes,omitempty"`
	Sold            bool          `bson:"sold"`
	ArtistID        bson.ObjectID `bson:"artist_id"`
	CategoryID      string        `bson:"category_id,omitempty"`
	Tags            []string      `bson:"tags,omitempty"`
	CreatedAt       time.Time     `bson:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at"`
}

// Files returns every stored file name referenced by the artwork.
func (a *Artwork) Files() []string {
	files := make([]string, 0, len(a.Images)+1)
	if a.Thumbnail != "" {
		files = append(files, a.Thumbnail)
	}
	for _, img := range a.Images {
		if img != "" {
			files = append(files, img)
		}
	}
	return files
}
