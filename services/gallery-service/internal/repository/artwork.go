package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
)

// ArtworkRepository defines the interface for artwork-related database operations.
type ArtworkRepository interface {
	CreateArtwork(ctx context.Context, artwork *model.Artwork) (*model.Artwork, error)
	GetArtwork(ctx context.Context, id string) (*model.Artwork, error)
	UpdateArtwork(ctx context.Context, id string, params UpdateArtworkParams) (*model.Artwork, error)
	DeleteArtwork(ctx context.Context, id string) (*model.Artwork, error)
	ListArtworks(ctx context.Context, params FilterArtworksParams) ([]*model.Artwork, error)
	CountArtworks(ctx context.Context, params FilterArtworksParams) (int64, error)

	// DeleteArtworksByArtist removes every artwork of an artist and returns the removed documents.
	DeleteArtworksByArtist(ctx context.Context, artistID string) ([]*model.Artwork, error)
}

// UpdateArtworkParams defines the optional parameters for updating an artwork.
// Only the fields that are not nil will be updated.
type UpdateArtworkParams struct {
	Title           *string
	Description     *string
	Thumbnail       *string
	Images          *[]string
	Size            *string
	Media           *string
	PrintNumber     *string
	InventoryNumber *string
	Status          *model.ArtworkStatus
	Price           *float64
	Location        *string
	Notes           *string
	Sold            *bool
	CategoryID      *string
	Tags            *[]string
}

// FilterArtworksParams defines the parameters for filtering and paginating artworks.
type FilterArtworksParams struct {
	Search     *string
	ArtistID   *string
	CategoryID *string
	Sold       *bool
	Status     *model.ArtworkStatus
	Limit      uint64
	Offset     uint64
	SortBy     *string
	SortDesc   bool
}

const artworkCollection = "artworks"

type artworkMongoRepository struct {
	db *mongo.Database
}

func NewArtworkMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ArtworkRepository {
	collection := db.Collection(artworkCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "artist_id", Value: 1}}},
		{Keys: bson.D{{Key: "sold", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create artwork indexes")
	}

	return &artworkMongoRepository{db: db}
}

func (r *artworkMongoRepository) CreateArtwork(ctx context.Context, artwork *model.Artwork) (*model.Artwork, error) {
	now := time.Now()
	artwork.CreatedAt = now
	artwork.UpdatedAt = now

	if artwork.Images == nil {
		artwork.Images = []string{}
	}
	if artwork.Status == "" {
		artwork.Status = model.ArtworkStatusAvailable
	}

	result, err := r.db.Collection(artworkCollection).InsertOne(ctx, artwork)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		artwork.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return artwork, nil
}

func (r *artworkMongoRepository) GetArtwork(ctx context.Context, id string) (*model.Artwork, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var artwork model.Artwork
	if err := r.db.Collection(artworkCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&artwork); err != nil {
		return nil, err
	}

	return &artwork, nil
}

func (r *artworkMongoRepository) UpdateArtwork(
	ctx context.Context,
	id string,
	params UpdateArtworkParams,
) (*model.Artwork, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	setIf(updateMap, "title", params.Title)
	setIf(updateMap, "description", params.Description)
	setIf(updateMap, "thumbnail", params.Thumbnail)
	setIf(updateMap, "images", params.Images)
	setIf(updateMap, "size", params.Size)
	setIf(updateMap, "media", params.Media)
	setIf(updateMap, "print_number", params.PrintNumber)
	setIf(updateMap, "inventory_number", params.InventoryNumber)
	setIf(updateMap, "status", params.Status)
	setIf(updateMap, "price", params.Price)
	setIf(updateMap, "location", params.Location)
	setIf(updateMap, "notes", params.Notes)
	setIf(updateMap, "sold", params.Sold)
	setIf(updateMap, "category_id", params.CategoryID)
	setIf(updateMap, "tags", params.Tags)

	if len(updateMap) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(artworkCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var artwork model.Artwork
	if err := result.Decode(&artwork); err != nil {
		return nil, err
	}

	return &artwork, nil
}

func (r *artworkMongoRepository) DeleteArtwork(ctx context.Context, id string) (*model.Artwork, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var artwork model.Artwork
	if err := r.db.Collection(artworkCollection).
		FindOneAndDelete(ctx, bson.M{"_id": objectID}).
		Decode(&artwork); err != nil {
		return nil, err
	}

	return &artwork, nil
}

func (r *artworkMongoRepository) ListArtworks(
	ctx context.Context,
	params FilterArtworksParams,
) ([]*model.Artwork, error) {
	filter, err := artworkFilter(params)
	if err != nil {
		return nil, err
	}

	sortBy := "created_at"
	if params.SortBy != nil {
		sortBy = *params.SortBy
	}

	cursor, err := r.db.Collection(artworkCollection).Find(
		ctx,
		filter,
		findOptions(params.Limit, params.Offset, sortBy, params.SortDesc),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	artworks := make([]*model.Artwork, 0)
	if err := cursor.All(ctx, &artworks); err != nil {
		return nil, err
	}

	return artworks, nil
}

func (r *artworkMongoRepository) CountArtworks(ctx context.Context, params FilterArtworksParams) (int64, error) {
	filter, err := artworkFilter(params)
	if err != nil {
		return 0, err
	}

	return r.db.Collection(artworkCollection).CountDocuments(ctx, filter)
}

func (r *artworkMongoRepository) DeleteArtworksByArtist(
	ctx context.Context,
	artistID string,
) ([]*model.Artwork, error) {
	artworks, err := r.ListArtworks(ctx, FilterArtworksParams{ArtistID: &artistID})
	if err != nil {
		return nil, err
	}
	if len(artworks) == 0 {
		return artworks, nil
	}

	ids := make(bson.A, 0, len(artworks))
	for _, a := range artworks {
		ids = append(ids, a.ID)
	}

	if _, err := r.db.Collection(artworkCollection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}

	return artworks, nil
}

func artworkFilter(params FilterArtworksParams) (bson.M, error) {
	filter := bson.M{}

	if params.Search != nil && *params.Search != "" {
		pattern := containsPattern(*params.Search)
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if params.ArtistID != nil {
		artistID, err := parseObjectID(*params.ArtistID)
		if err != nil {
			return nil, err
		}
		filter["artist_id"] = artistID
	}
	if params.CategoryID != nil {
		filter["category_id"] = *params.CategoryID
	}
	if params.Sold != nil {
		filter["sold"] = *params.Sold
	}
	if params.Status != nil {
		filter["status"] = *params.Status
	}

	return filter, nil
}

// setIf adds key to m when v is not nil.
func setIf[T any](m bson.M, key string, v *T) {
	if v != nil {
		m[key] = *v
	}
}
