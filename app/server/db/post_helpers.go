package db

import (
	"context"
	"database/sql"
	"fmt"

	shared "socialmedia/app/shared"
)

const postsWithLikesQuery = `
SELECT p.id, p.body, p.user_id, p.image_url, p.created_at, COUNT(l.id) AS likes
FROM posts p
LEFT JOIN likes l ON l.post_id = p.id`

func orderByForSorting(sorting shared.PostSorting) (string, error) {
	switch sorting {
	case shared.PostSortingNew, "":
		return "p.id DESC", nil
	case shared.PostSortingOld:
		return "p.id ASC", nil
	case shared.PostSortingMostLikes:
		return "likes DESC, p.id DESC", nil
	}
	return "", fmt.Errorf("unknown sorting: %s", sorting)
}

func (s *PostgresStore) CreatePost(ctx context.Context, post *Post) error {
	err := s.Conn.QueryRowContext(ctx,
		"INSERT INTO posts (body, user_id, image_url) VALUES ($1, $2, $3) RETURNING id, created_at",
		post.Body, post.UserId, post.ImageUrl,
	).Scan(&post.Id, &post.CreatedAt)

	if err != nil {
		if isForeignKeyErr(err) {
			return fmt.Errorf("user %d: %w", post.UserId, ErrNotFound)
		}
		return fmt.Errorf("error creating post: %v", err)
	}

	return nil
}

func (s *PostgresStore) GetPost(ctx context.Context, id int64) (*Post, error) {
	var post Post
	err := s.Conn.GetContext(ctx, &post, "SELECT * FROM posts WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting post: %v", err)
	}

	return &post, nil
}

func (s *PostgresStore) GetPostWithLikes(ctx context.Context, id int64) (*PostWithLikes, error) {
	var post PostWithLikes
	err := s.Conn.GetContext(ctx, &post, postsWithLikesQuery+" WHERE p.id = $1 GROUP BY p.id", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting post: %v", err)
	}

	return &post, nil
}

func (s *PostgresStore) ListPostsWithLikes(ctx context.Context, sorting shared.PostSorting) ([]*PostWithLikes, error) {
	orderBy, err := orderByForSorting(sorting)
	if err != nil {
		return nil, err
	}

	posts := []*PostWithLikes{}
	err = s.Conn.SelectContext(ctx, &posts, postsWithLikesQuery+" GROUP BY p.id ORDER BY "+orderBy)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %v", err)
	}

	return posts, nil
}

func (s *PostgresStore) SetPostImageUrl(ctx context.Context, postId int64, url string) error {
	res, err := s.Conn.ExecContext(ctx, "UPDATE posts SET image_url = $1 WHERE id = $2", url, postId)
	if err != nil {
		return fmt.Errorf("error updating post image: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating post image: %v", err)
	}
	if n == 0 {
		return fmt.Errorf("post %d: %w", postId, ErrNotFound)
	}

	return nil
}
