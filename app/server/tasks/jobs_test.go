package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"socialmedia/app/server/db"
	"socialmedia/app/server/types"
	shared "socialmedia/app/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	To, Subject, Body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{to, subject, body})
	return nil
}

type fakeGenerator struct {
	url string
	err error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.url, g.err
}

type countingCache struct {
	invalidations int
}

func (c *countingCache) Get(ctx context.Context, sorting shared.PostSorting) ([]*shared.PostWithLikes, bool) {
	return nil, false
}
func (c *countingCache) Generation(ctx context.Context) int64 { return 0 }
func (c *countingCache) Set(ctx context.Context, sorting shared.PostSorting, generation int64, posts []*shared.PostWithLikes) {
}
func (c *countingCache) Invalidate(ctx context.Context) { c.invalidations++ }
func (c *countingCache) Close() error                   { return nil }

func seedPost(t *testing.T, store *db.MemoryStore) *db.Post {
	t.Helper()
	ctx := context.Background()
	user, err := store.CreateUser(ctx, "test@example.net", "hash")
	require.NoError(t, err)
	post := &db.Post{Body: "Test Post", UserId: user.Id}
	require.NoError(t, store.CreatePost(ctx, post))
	return post
}

func TestSendRegistrationEmail(t *testing.T) {
	mailer := &recordingMailer{}
	r := &Runner{Mailer: mailer}

	require.NoError(t, r.SendRegistrationEmail("test@example.net", "http://x/confirm/t")(context.Background()))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Successfully signed up", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Body, "http://x/confirm/t")
}

func TestGenerateAndAddToPost(t *testing.T) {
	store := db.NewMemoryStore()
	post := seedPost(t, store)
	mailer := &recordingMailer{}
	c := &countingCache{}

	r := &Runner{Store: store, Mailer: mailer, Generator: &fakeGenerator{url: "https://img.example/cat.jpg"}, Cache: c}
	require.NoError(t, r.GenerateAndAddToPost("test@example.net", post.Id, "A cat")(context.Background()))

	stored, err := store.GetPost(context.Background(), post.Id)
	require.NoError(t, err)
	require.NotNil(t, stored.ImageUrl)
	assert.Equal(t, "https://img.example/cat.jpg", *stored.ImageUrl)
	assert.Equal(t, 1, c.invalidations)
	assert.Empty(t, mailer.sent)
}

func TestGenerateAndAddToPostFailureEmailsUser(t *testing.T) {
	store := db.NewMemoryStore()
	post := seedPost(t, store)
	mailer := &recordingMailer{}

	r := &Runner{Store: store, Mailer: mailer, Generator: &fakeGenerator{err: types.NewStatusCodeError(500, nil)}}
	require.NoError(t, r.GenerateAndAddToPost("test@example.net", post.Id, "A cat")(context.Background()))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Error in generating image", mailer.sent[0].Subject)
	assert.Equal(t, "Hi test@example.net!\nAn error occurred while generating image: API request failed with status code 500", mailer.sent[0].Body)

	stored, _ := store.GetPost(context.Background(), post.Id)
	assert.Nil(t, stored.ImageUrl)
}

func TestGenerateAndAddToPostMissingPost(t *testing.T) {
	r := &Runner{Store: db.NewMemoryStore(), Mailer: &recordingMailer{}, Generator: &fakeGenerator{url: "u"}}
	err := r.GenerateAndAddToPost("a@b.c", 42, "p")(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrNotFound))
}
