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

// CategoryRepository defines the interface for category-related database operations.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, params UpdateCategoryParams) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context, params FilterCategoriesParams) ([]*model.Category, error)
	CountCategories(ctx context.Context) (int64, error)
}

// UpdateCategoryParams defines the optional parameters for updating a category.
type UpdateCategoryParams struct {
	Name        *string
	Description *string
}

// FilterCategoriesParams defines the paging of category listings. Categories are sorted by name.
type FilterCategoriesParams struct {
	Limit  uint64
	Offset uint64
}

const categoryCollection = "categories"

type categoryMongoRepository struct {
	db *mongo.Database
}

func NewCategoryMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) CategoryRepository {
	collection := db.Collection(categoryCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create category indexes")
	}

	return &categoryMongoRepository{db: db}
}

func (r *categoryMongoRepository) CreateCategory(
	ctx context.Context,
	category *model.Category,
) (*model.Category, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	result, err := r.db.Collection(categoryCollection).InsertOne(ctx, category)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		category.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return category, nil
}

func (r *categoryMongoRepository) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *categoryMongoRepository) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *categoryMongoRepository) UpdateCategory(
	ctx context.Context,
	id string,
	params UpdateCategoryParams,
) (*model.Category, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	setIf(updateMap, "name", params.Name)
	setIf(updateMap, "description", params.Description)

	if len(updateMap) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(categoryCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var category model.Category
	if err := result.Decode(&category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryMongoRepository) DeleteCategory(ctx context.Context, id string) (*model.Category, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var category model.Category
	if err := r.db.Collection(categoryCollection).
		FindOneAndDelete(ctx, bson.M{"_id": objectID}).
		Decode(&category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryMongoRepository) ListCategories(
	ctx context.Context,
	params FilterCategoriesParams,
) ([]*model.Category, error) {
	cursor, err := r.db.Collection(categoryCollection).Find(
		ctx,
		bson.M{},
		findOptions(params.Limit, params.Offset, "name", false),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := make([]*model.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryMongoRepository) CountCategories(ctx context.Context) (int64, error) {
	return r.db.Collection(categoryCollection).CountDocuments(ctx, bson.M{})
}

func (r *categoryMongoRepository) findOne(ctx context.Context, filter any) (*model.Category, error) {
	var category model.Category
	if err := r.db.Collection(categoryCollection).FindOne(ctx, filter).Decode(&category); err != nil {
		return nil, err
	}

	return &category, nil
}
