package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
)

// CategoryUsecase defines the category operations.
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, params CreateCategoryParams) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, params repository.UpdateCategoryParams) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, page types.PageRequest) (*CategoryList, error)
}

// CreateCategoryParams defines the parameters for creating a category.
type CreateCategoryParams struct {
	Name        string
	Description string
}

// CategoryList is a page of categories sorted by name.
type CategoryList struct {
	Categories []*model.Category
	Pagination *types.Pagination
}

type categoryUsecase struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryUsecase(categoryRepo repository.CategoryRepository) CategoryUsecase {
	return &categoryUsecase{categoryRepo: categoryRepo}
}

func (u *categoryUsecase) CreateCategory(ctx context.Context, params CreateCategoryParams) (*model.Category, error) {
	name := strings.TrimSpace(params.Name)

	if err := u.ensureNameAvailable(ctx, name); err != nil {
		return nil, err
	}

	category, err := u.categoryRepo.CreateCategory(ctx, &model.Category{
		Name:        name,
		Description: params.Description,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, err
	}

	return category, nil
}

func (u *categoryUsecase) UpdateCategory(
	ctx context.Context,
	id string,
	params repository.UpdateCategoryParams,
) (*model.Category, error) {
	category, err := u.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" || name == category.Name {
			params.Name = nil
		} else {
			if err := u.ensureNameAvailable(ctx, name); err != nil {
				return nil, err
			}
			params.Name = &name
		}
	}

	if params.Name == nil && params.Description == nil {
		return category, nil
	}

	updated, err := u.categoryRepo.UpdateCategory(ctx, id, params)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrCategoryNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrCategoryAlreadyExists
		default:
			return nil, err
		}
	}

	return updated, nil
}

func (u *categoryUsecase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := u.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCategoryNotFound
		}
		return err
	}

	return nil
}

func (u *categoryUsecase) ListCategories(ctx context.Context, page types.PageRequest) (*CategoryList, error) {
	page = page.Normalize()

	categories, err := u.categoryRepo.ListCategories(ctx, repository.FilterCategoriesParams{
		Limit:  page.QueryLimit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}

	list := &CategoryList{Categories: categories}
	if page.All {
		return list, nil
	}

	total, err := u.categoryRepo.CountCategories(ctx)
	if err != nil {
		return nil, err
	}
	list.Pagination = types.NewPagination(total, page)

	return list, nil
}

func (u *categoryUsecase) ensureNameAvailable(ctx context.Context, name string) error {
	_, err := u.categoryRepo.GetCategoryByName(ctx, name)
	switch {
	case err == nil:
		return ErrCategoryAlreadyExists
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil
	default:
		return err
	}
}
