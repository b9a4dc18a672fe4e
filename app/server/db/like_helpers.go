package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func (s *PostgresStore) CreateLike(ctx context.Context, like *Like) error {
	return s.WithTx(ctx, "create like", func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)", like.PostId)
		if err != nil {
			return fmt.Errorf("error checking post: %v", err)
		}
		if !exists {
			return fmt.Errorf("post %d: %w", like.PostId, ErrNotFound)
		}

		err = tx.QueryRowContext(ctx,
			"INSERT INTO likes (post_id, user_id) VALUES ($1, $2) RETURNING id, created_at",
			like.PostId, like.UserId,
		).Scan(&like.Id, &like.CreatedAt)

		if err != nil {
			if IsNonUniqueErr(err) {
				return fmt.Errorf("like for post %d: %w", like.PostId, ErrDuplicate)
			}
			return fmt.Errorf("error creating like: %v", err)
		}

		return nil
	})
}
