package services

import (
	"context"

	"github.com/4oBuko/tag-browser/internal/models"
	"github.com/4oBuko/tag-browser/internal/myerrors"
	"github.com/4oBuko/tag-browser/internal/repositories"
	"github.com/4oBuko/tag-browser/pkg/tagsapi"
	"github.com/google/uuid"
)

type TagService interface {
	List(ctx context.Context, query models.TagsQuery) (tagsapi.TagPage, error)
	GetById(ctx context.Context, id string) (tagsapi.Tag, error)
	Add(ctx context.Context, tag models.NewTag) (tagsapi.Tag, error)
}

type DefaultTagService struct {
	tagRepo repositories.TagRepository
	newId   func() string
}

func NewDefaultTagService(tagRepo repositories.TagRepository) *DefaultTagService {
	return &DefaultTagService{
		tagRepo: tagRepo,
		newId:   func() string { return uuid.NewString()[:8] },
	}
}

// List returns one page in the json-server envelope. A page past the end is
// clamped to the last page, prev and next are nil at the edges.
func (d *DefaultTagService) List(ctx context.Context, query models.TagsQuery) (tagsapi.TagPage, error) {
	query = query.Normalize()

	items, err := d.tagRepo.Count(ctx, query.Title)
	if err != nil {
		return tagsapi.TagPage{}, err
	}
	pages := (items + query.PerPage - 1) / query.PerPage
	page := max(1, min(query.Page, pages))

	tags, err := d.tagRepo.List(ctx, query.Title, query.PerPage, (page-1)*query.PerPage)
	if err != nil {
		return tagsapi.TagPage{}, err
	}

	result := tagsapi.TagPage{
		First: 1,
		Last:  pages,
		Pages: pages,
		Items: items,
		Data:  tags,
	}
	if page > 1 {
		prev := page - 1
		result.Prev = &prev
	}
	if page < pages {
		next := page + 1
		result.Next = &next
	}
	return result, nil
}

func (d *DefaultTagService) GetById(ctx context.Context, id string) (tagsapi.Tag, error) {
	tag, err := d.tagRepo.GetById(ctx, id)
	if err != nil {
		return tagsapi.Tag{}, err
	}
	return tag, nil
}

func (d *DefaultTagService) Add(ctx context.Context, tag models.NewTag) (tagsapi.Tag, error) {
	exists, err := d.tagRepo.ExistsByTitle(ctx, tag.Title)
	if err != nil {
		return tagsapi.Tag{}, err
	}
	if exists {
		return tagsapi.Tag{}, myerrors.NewRequestError("tag %q already exists", tag.Title)
	}
	newTag, err := d.tagRepo.Add(ctx, tagsapi.Tag{
		Id:             d.newId(),
		Title:          tag.Title,
		AmountOfVideos: tag.AmountOfVideos,
	})
	if err != nil {
		return tagsapi.Tag{}, err
	}
	return newTag, nil
}
