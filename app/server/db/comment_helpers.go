package db

import (
	"context"
	"fmt"
)

func (s *PostgresStore) CreateComment(ctx context.Context, comment *Comment) error {
	err := s.Conn.QueryRowContext(ctx,
		"INSERT INTO comments (body, post_id, user_id) VALUES ($1, $2, $3) RETURNING id, created_at",
		comment.Body, comment.PostId, comment.UserId,
	).Scan(&comment.Id, &comment.CreatedAt)

	if err != nil {
		if isForeignKeyErr(err) {
			return fmt.Errorf("post %d: %w", comment.PostId, ErrNotFound)
		}
		return fmt.Errorf("error creating comment: %v", err)
	}

	return nil
}

func (s *PostgresStore) ListComments(ctx context.Context, postId int64) ([]*Comment, error) {
	comments := []*Comment{}
	err := s.Conn.SelectContext(ctx, &comments, "SELECT * FROM comments WHERE post_id = $1 ORDER BY id ASC", postId)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %v", err)
	}

	return comments, nil
}
