package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/4oBuko/tag-browser/pkg/tagsapi"
)

var ErrTagNotFound = errors.New("tag not found")

type TagRepository interface {
	Count(ctx context.Context, title string) (int, error)
	List(ctx context.Context, title string, limit, offset int) ([]tagsapi.Tag, error)
	GetById(ctx context.Context, id string) (tagsapi.Tag, error)
	Add(ctx context.Context, tag tagsapi.Tag) (tagsapi.Tag, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}

type MySQLTagRepository struct {
	db Querier
}

func NewMySQLTagRepository(db Querier) *MySQLTagRepository {
	return &MySQLTagRepository{db: db}
}

// escapeLike makes title match literally inside a LIKE pattern.
func escapeLike(title string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(title) + "%"
}

func (m *MySQLTagRepository) Count(ctx context.Context, title string) (int, error) {
	var total int
	countQuery := "SELECT COUNT(*) FROM tags WHERE title LIKE ?"
	if err := m.db.QueryRowContext(ctx, countQuery, escapeLike(title)).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return total, nil
}

func (m *MySQLTagRepository) List(ctx context.Context, title string, limit, offset int) ([]tagsapi.Tag, error) {
	listQuery := "SELECT id, title, amount_of_videos FROM tags WHERE title LIKE ? ORDER BY seq LIMIT ? OFFSET ?"
	rows, err := m.db.QueryContext(ctx, listQuery, escapeLike(title), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []tagsapi.Tag{}
	for rows.Next() {
		var tag tagsapi.Tag
		if err := rows.Scan(&tag.Id, &tag.Title, &tag.AmountOfVideos); err != nil {
			return nil, fmt.Errorf("scan failed :%w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return tags, nil
}

func (m *MySQLTagRepository) GetById(ctx context.Context, id string) (tagsapi.Tag, error) {
	var tag tagsapi.Tag
	getByIdQuery := "SELECT id, title, amount_of_videos FROM tags WHERE id = ?"
	err := m.db.QueryRowContext(ctx, getByIdQuery, id).Scan(&tag.Id, &tag.Title, &tag.AmountOfVideos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tagsapi.Tag{}, ErrTagNotFound
		}
		return tagsapi.Tag{}, fmt.Errorf("failed to get tag by id: %w", err)
	}
	return tag, nil
}

func (m *MySQLTagRepository) Add(ctx context.Context, tag tagsapi.Tag) (tagsapi.Tag, error) {
	newTagQuery := "INSERT INTO tags(id, title, amount_of_videos) VALUES(?,?,?)"
	if _, err := m.db.ExecContext(ctx, newTagQuery, tag.Id, tag.Title, tag.AmountOfVideos); err != nil {
		return tagsapi.Tag{}, fmt.Errorf("failed to add new tag: %w", err)
	}
	return tag, nil
}

func (m *MySQLTagRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	tagExistsQuery := "SELECT EXISTS (SELECT 1 FROM tags WHERE title = ?)"
	if err := m.db.QueryRowContext(ctx, tagExistsQuery, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("existence check failed: %w", err)
	}
	return exists, nil
}
