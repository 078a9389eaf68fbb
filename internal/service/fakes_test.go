package service

import (
	"context"
	"time"

	"backr/internal/model"
	"backr/internal/repository"
)

// In-memory repository fakes. They keep insertion order so tests can assert
// on "first encountered" semantics.

type fakeMembershipRepo struct {
	rows []model.Membership
}

func (f *fakeMembershipRepo) Insert(_ context.Context, m *model.Membership) error {
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeMembershipRepo) ListByPair(_ context.Context, user, creator string) ([]model.Membership, error) {
	var out []model.Membership
	for _, m := range f.rows {
		if model.SameAddress(m.UserAddress, user) && model.SameAddress(m.CreatorAddress, creator) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) ListBySubscriber(_ context.Context, user string) ([]model.Membership, error) {
	var out []model.Membership
	for _, m := range f.rows {
		if model.SameAddress(m.UserAddress, user) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) ListByCreator(_ context.Context, creator string) ([]model.Membership, error) {
	var out []model.Membership
	for _, m := range f.rows {
		if model.SameAddress(m.CreatorAddress, creator) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTipRepo struct {
	rows []model.Tip
}

func (f *fakeTipRepo) Insert(_ context.Context, t *model.Tip) error {
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeTipRepo) ListByReceiver(_ context.Context, receiver string) ([]model.Tip, error) {
	var out []model.Tip
	for _, t := range f.rows {
		if model.SameAddress(t.Receiver, receiver) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTipRepo) ListBySender(_ context.Context, sender string) ([]model.Tip, error) {
	var out []model.Tip
	for _, t := range f.rows {
		if model.SameAddress(t.Sender, sender) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeTierRepo struct {
	rows []model.Tier
}

func (f *fakeTierRepo) Create(_ context.Context, t *model.Tier) error {
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeTierRepo) Update(_ context.Context, t *model.Tier) error {
	for i := range f.rows {
		if f.rows[i].ID == t.ID && model.SameAddress(f.rows[i].CreatorAddress, t.CreatorAddress) {
			f.rows[i] = *t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTierRepo) Delete(_ context.Context, id, creator string) error {
	for i := range f.rows {
		if f.rows[i].ID == id && model.SameAddress(f.rows[i].CreatorAddress, creator) {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTierRepo) GetByID(_ context.Context, id string) (*model.Tier, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			t := f.rows[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTierRepo) ListByCreator(_ context.Context, creator string) ([]model.Tier, error) {
	var out []model.Tier
	for _, t := range f.rows {
		if model.SameAddress(t.CreatorAddress, creator) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTierRepo) ReplaceAll(_ context.Context, creator string, tiers []model.Tier) error {
	var kept []model.Tier
	for _, t := range f.rows {
		if !model.SameAddress(t.CreatorAddress, creator) {
			kept = append(kept, t)
		}
	}
	for i := range tiers {
		tiers[i].CreatorAddress = creator
	}
	f.rows = append(kept, tiers...)
	return nil
}

type fakeCreatorRepo struct {
	rows map[string]model.Creator
}

func newFakeCreatorRepo() *fakeCreatorRepo {
	return &fakeCreatorRepo{rows: make(map[string]model.Creator)}
}

func (f *fakeCreatorRepo) Upsert(_ context.Context, c *model.Creator) error {
	f.rows[c.Address] = *c
	return nil
}

func (f *fakeCreatorRepo) GetByAddress(_ context.Context, address string) (*model.Creator, error) {
	c, ok := f.rows[model.NormalizeAddress(address)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCreatorRepo) GetByUsername(_ context.Context, username string) (*model.Creator, error) {
	for _, c := range f.rows {
		if c.Username == username {
			out := c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakePostRepo struct {
	posts    []model.Post
	comments []model.Comment
}

func (f *fakePostRepo) Create(_ context.Context, p *model.Post) error {
	f.posts = append(f.posts, *p)
	return nil
}

func (f *fakePostRepo) Update(_ context.Context, p *model.Post) error {
	for i := range f.posts {
		if f.posts[i].ID == p.ID {
			f.posts[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakePostRepo) Delete(_ context.Context, id, creator string) error {
	for i := range f.posts {
		if f.posts[i].ID == id && model.SameAddress(f.posts[i].CreatorAddress, creator) {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*model.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) ListByCreator(_ context.Context, creator string) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if model.SameAddress(p.CreatorAddress, creator) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) ListPublic(_ context.Context, category string, limit int) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if !p.Public() {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePostRepo) IncrementLikes(_ context.Context, id string) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Likes++
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakePostRepo) InsertComment(_ context.Context, c *model.Comment) error {
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakePostRepo) ListComments(_ context.Context, postID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakePostRepo) CountCommentsForCreatorSince(_ context.Context, creator string, since time.Time) (int, error) {
	byPost := make(map[string]bool)
	for _, p := range f.posts {
		if model.SameAddress(p.CreatorAddress, creator) {
			byPost[p.ID] = true
		}
	}
	n := 0
	for _, c := range f.comments {
		if byPost[c.PostID] && !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// fixedClock returns a time function pinned to a single instant.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
