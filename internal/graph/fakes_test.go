package graph

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuanvm/social-network/backend/internal/models"
	"github.com/tuanvm/social-network/backend/internal/repositories"
	"github.com/tuanvm/social-network/backend/pkg/mediastore"
)

// In-memory repository fakes. They mirror the Mongo implementations
// closely enough for resolver flows: id assignment on create, ErrNotFound
// on misses, and ref arrays manipulated by field name.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	failUpdatePhoto error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func refSlice(u *models.User, field string) *[]primitive.ObjectID {
	switch field {
	case "posts":
		return &u.Posts
	case "likes":
		return &u.Likes
	case "comments":
		return &u.Comments
	case "followers":
		return &u.Followers
	case "following":
		return &u.Following
	case "notifications":
		return &u.Notifications
	case "messages":
		return &u.Messages
	}
	return nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[oid]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByEmailOrUsername(_ context.Context, emailOrUsername string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == emailOrUsername || u.Username == emailOrUsername {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetDuplicate(_ context.Context, email, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Search(_ context.Context, query, excludeID string, limit int64) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.ID.Hex() == excludeID {
			continue
		}
		if strings.Contains(u.Username, query) || strings.Contains(u.FullName, query) {
			out = append(out, *u)
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindNotIn(_ context.Context, exclude []primitive.ObjectID, skip, limit int64) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := map[primitive.ObjectID]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []models.User
	for _, u := range r.users {
		if !excluded[u.ID] {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if skip < int64(len(out)) {
		out = out[skip:]
	} else {
		out = nil
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) CountNotIn(_ context.Context, exclude []primitive.ObjectID) (int64, error) {
	users, _ := r.FindNotIn(context.Background(), exclude, 0, 0)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) SetOnline(_ context.Context, id string, online bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[oid]; ok {
		u.IsOnline = online
	}
	return nil
}

func (r *fakeUserRepo) UpdatePhoto(_ context.Context, id, url, publicID string, isCover bool) (*models.User, error) {
	if r.failUpdatePhoto != nil {
		return nil, r.failUpdatePhoto
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[oid]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if isCover {
		u.CoverImage, u.CoverImagePublicID = url, publicID
	} else {
		u.Image, u.ImagePublicID = url, publicID
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) SetPasswordReset(_ context.Context, id, token string, expiry time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[oid]; ok {
		u.PasswordResetToken = token
		u.PasswordResetTokenExpiry = expiry
	}
	return nil
}

func (r *fakeUserRepo) GetByResetToken(_ context.Context, email, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.PasswordResetToken == token && u.PasswordResetTokenExpiry.After(time.Now()) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[oid]; ok {
		u.Password = passwordHash
		u.PasswordResetToken = ""
		u.PasswordResetTokenExpiry = time.Time{}
	}
	return nil
}

func (r *fakeUserRepo) PushRef(_ context.Context, userID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		if s := refSlice(u, field); s != nil {
			*s = append(*s, ref)
		}
	}
	return nil
}

func (r *fakeUserRepo) PullRef(_ context.Context, userID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		pull(u, field, ref)
	}
	return nil
}

func (r *fakeUserRepo) PullRefFromAll(_ context.Context, field string, ref primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		pull(u, field, ref)
	}
	return nil
}

func pull(u *models.User, field string, ref primitive.ObjectID) {
	s := refSlice(u, field)
	if s == nil {
		return
	}
	kept := (*s)[:0]
	for _, id := range *s {
		if id != ref {
			kept = append(kept, id)
		}
	}
	*s = kept
}

func (r *fakeUserRepo) AddConversationPartner(_ context.Context, userID, partnerID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if u.HasConversationWith(partnerID) {
		return false, nil
	}
	u.Messages = append(u.Messages, partnerID)
	return true, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post

	failCreate error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*models.Post{}}
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[oid]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePostRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, id := range ids {
		if p, ok := r.posts[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[oid]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.posts, oid)
	return p, nil
}

func (r *fakePostRepo) GetExplore(_ context.Context, excludeAuthor primitive.ObjectID, skip, limit int64) ([]models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		if p.Image != "" && p.Author != excludeAuthor {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePostRepo) GetByAuthors(_ context.Context, authors []primitive.ObjectID, skip, limit int64) ([]models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[primitive.ObjectID]bool{}
	for _, a := range authors {
		wanted[a] = true
	}
	var out []models.Post
	for _, p := range r.posts {
		if wanted[p.Author] {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakePostRepo) PushRef(_ context.Context, postID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	switch field {
	case "likes":
		p.Likes = append(p.Likes, ref)
	case "comments":
		p.Comments = append(p.Comments, ref)
	}
	return nil
}

func (r *fakePostRepo) PullRef(_ context.Context, postID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	filter := func(ids []primitive.ObjectID) []primitive.ObjectID {
		kept := ids[:0]
		for _, id := range ids {
			if id != ref {
				kept = append(kept, id)
			}
		}
		return kept
	}
	switch field {
	case "likes":
		p.Likes = filter(p.Likes)
	case "comments":
		p.Comments = filter(p.Comments)
	}
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[primitive.ObjectID]*models.Comment{}}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) (*models.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[oid]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.comments, oid)
	return c, nil
}

func (r *fakeCommentRepo) DeleteByPost(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []models.Comment
	for id, c := range r.comments {
		if c.Post == postID {
			removed = append(removed, *c)
			delete(r.comments, id)
		}
	}
	return removed, nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[primitive.ObjectID]*models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[primitive.ObjectID]*models.Like{}}
}

func (r *fakeLikeRepo) Create(_ context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	r.likes[like.ID] = like
	return nil
}

func (r *fakeLikeRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Like
	for _, id := range ids {
		if l, ok := r.likes[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) Delete(_ context.Context, postID, userID primitive.ObjectID) (*models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.likes {
		if l.Post == postID && l.User == userID {
			delete(r.likes, id)
			return l, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeLikeRepo) DeleteByPost(_ context.Context, postID primitive.ObjectID) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []models.Like
	for id, l := range r.likes {
		if l.Post == postID {
			removed = append(removed, *l)
			delete(r.likes, id)
		}
	}
	return removed, nil
}

type fakeFollowRepo struct {
	mu      sync.Mutex
	follows map[primitive.ObjectID]*models.Follow
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: map[primitive.ObjectID]*models.Follow{}}
}

func (r *fakeFollowRepo) Create(_ context.Context, follow *models.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	follow.ID = primitive.NewObjectID()
	follow.CreatedAt = time.Now()
	r.follows[follow.ID] = follow
	return nil
}

func (r *fakeFollowRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Follow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Follow
	for _, id := range ids {
		if f, ok := r.follows[id]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) Delete(_ context.Context, userID, followerID primitive.ObjectID) (*models.Follow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, f := range r.follows {
		if f.User == userID && f.Follower == followerID {
			delete(r.follows, id)
			return f, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeFollowRepo) FolloweeIDs(_ context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []primitive.ObjectID
	for _, f := range r.follows {
		if f.Follower == followerID {
			out = append(out, f.User)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*models.Message

	failCreate error
}

func newFakeMessageRepo() *fakeMessageRepo { return &fakeMessageRepo{} }

func (r *fakeMessageRepo) Create(_ context.Context, message *models.Message) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = primitive.NewObjectID()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) GetConversation(_ context.Context, userA, userB primitive.ObjectID) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.messages {
		if (m.Sender == userA && m.Receiver == userB) || (m.Sender == userB && m.Receiver == userA) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) MarkSeen(_ context.Context, sender, receiver primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.messages {
		if m.Sender == sender && m.Receiver == receiver && !m.Seen {
			m.Seen = true
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) LatestInbound(_ context.Context, user primitive.ObjectID) (map[string]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]models.Message{}
	for _, m := range r.messages {
		if m.Receiver != user {
			continue
		}
		key := m.Sender.Hex()
		if prev, ok := out[key]; !ok || m.CreatedAt.After(prev.CreatedAt) {
			out[key] = *m
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) LatestOutbound(_ context.Context, user primitive.ObjectID) (map[string]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]models.Message{}
	for _, m := range r.messages {
		if m.Sender != user {
			continue
		}
		key := m.Receiver.Hex()
		if prev, ok := out[key]; !ok || m.CreatedAt.After(prev.CreatedAt) {
			out[key] = *m
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) LatestUnseenBySender(_ context.Context, receiver primitive.ObjectID) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	latest := map[primitive.ObjectID]models.Message{}
	for _, m := range r.messages {
		if m.Receiver != receiver || m.Seen {
			continue
		}
		if prev, ok := latest[m.Sender]; !ok || m.CreatedAt.After(prev.CreatedAt) {
			latest[m.Sender] = *m
		}
	}
	var out []models.Message
	for _, m := range latest {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[primitive.ObjectID]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[primitive.ObjectID]*models.Notification{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	r.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID, onlyUnseen bool) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, id := range ids {
		if n, ok := r.notifications[id]; ok {
			if onlyUnseen && n.Seen {
				continue
			}
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id string) (*models.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[oid]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.notifications, oid)
	return n, nil
}

func (r *fakeNotificationRepo) DeleteByRef(_ context.Context, field string, ref primitive.ObjectID) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.notifications {
		var match *primitive.ObjectID
		switch field {
		case "like":
			match = n.Like
		case "follow":
			match = n.Follow
		case "comment":
			match = n.Comment
		}
		if match != nil && *match == ref {
			delete(r.notifications, id)
			return n, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) DeleteByPost(_ context.Context, postID primitive.ObjectID) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []models.Notification
	for id, n := range r.notifications {
		if n.Post != nil && *n.Post == postID {
			removed = append(removed, *n)
			delete(r.notifications, id)
		}
	}
	return removed, nil
}

func (r *fakeNotificationRepo) MarkAllSeen(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.User == userID {
			n.Seen = true
		}
	}
	return nil
}

// fakeMediaStore keeps uploaded objects in memory so the upload and the
// compensating-delete paths are observable.
type fakeMediaStore struct {
	mu      sync.Mutex
	seq     int
	objects map[string][]byte
	removed []string

	failStore error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{objects: map[string][]byte{}}
}

func (s *fakeMediaStore) Store(_ context.Context, r io.Reader, bucket, contentType string) (*mediastore.Reference, error) {
	if s.failStore != nil {
		return nil, s.failStore
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	key := fmt.Sprintf("object-%d", s.seq)
	s.objects[bucket+"/"+key] = data
	return &mediastore.Reference{
		Bucket: bucket,
		Key:    key,
		URL:    mediastore.ObjectURL("http://media.test", bucket, key, contentType),
	}, nil
}

func (s *fakeMediaStore) Remove(_ context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+key)
	s.removed = append(s.removed, bucket+"/"+key)
	return nil
}

func (s *fakeMediaStore) stored() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
