package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/email"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
	"github.com/yigit/collegesocial/internal/pkg/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeRoster is an in-memory roster store. WithinTransaction restores a snapshot when
// fn fails, and Create/UpdateRosterFields enforce the ERN and email unique keys.
type fakeRoster struct {
	mu            sync.Mutex
	students      map[int64]models.Student
	conversations map[int64][]int64
	convCreated   map[int64]time.Time
	messages      []models.Message
	nextStudent   int64
	nextConv      int64
	nextMessage   int64
	clock         time.Time

	summaryCalls int
	summaryIDs   []int64
	summaryErr   error
	listErr      error
}

func newFakeRoster() *fakeRoster {
	return &fakeRoster{
		students:      map[int64]models.Student{},
		conversations: map[int64][]int64{},
		convCreated:   map[int64]time.Time{},
		clock:         time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

type rosterSnapshot struct {
	students      map[int64]models.Student
	conversations map[int64][]int64
	convCreated   map[int64]time.Time
	messages      []models.Message
	nextStudent   int64
	nextConv      int64
	nextMessage   int64
}

func (f *fakeRoster) snapshot() rosterSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := rosterSnapshot{
		students:      make(map[int64]models.Student, len(f.students)),
		conversations: make(map[int64][]int64, len(f.conversations)),
		convCreated:   make(map[int64]time.Time, len(f.convCreated)),
		messages:      append([]models.Message(nil), f.messages...),
		nextStudent:   f.nextStudent,
		nextConv:      f.nextConv,
		nextMessage:   f.nextMessage,
	}
	for k, v := range f.students {
		s.students[k] = v
	}
	for k, v := range f.conversations {
		s.conversations[k] = append([]int64(nil), v...)
	}
	for k, v := range f.convCreated {
		s.convCreated[k] = v
	}
	return s
}

func (f *fakeRoster) restore(s rosterSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.students = s.students
	f.conversations = s.conversations
	f.convCreated = s.convCreated
	f.messages = s.messages
	f.nextStudent = s.nextStudent
	f.nextConv = s.nextConv
	f.nextMessage = s.nextMessage
}

func (f *fakeRoster) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.RosterTx) error) error {
	snap := f.snapshot()
	if err := fn(ctx, repositories.RosterTx{Students: f, Messaging: f}); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

func (f *fakeRoster) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRoster) addStudent(s models.Student) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextStudent++
	s.ID = f.nextStudent
	if s.Interests == nil {
		s.Interests = models.Interests{}
	}
	f.students[s.ID] = s
	return s.ID
}

func (f *fakeRoster) student(id int64) (models.Student, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	return s, ok
}

func (f *fakeRoster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.students)
}

func (f *fakeRoster) find(match func(models.Student) bool) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if match(s) {
			c := s
			return &c, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (f *fakeRoster) GetByID(_ context.Context, id int64) (*models.Student, error) {
	return f.find(func(s models.Student) bool { return s.ID == id })
}

func (f *fakeRoster) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	return f.find(func(s models.Student) bool { return strings.EqualFold(s.Email, email) })
}

func (f *fakeRoster) GetByERN(_ context.Context, ern string) (*models.Student, error) {
	return f.find(func(s models.Student) bool { return s.ERNNumber == ern })
}

func (f *fakeRoster) GetAuthorSummaries(_ context.Context, ids []int64) (map[int64]models.AuthorSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaryCalls++
	f.summaryIDs = append([]int64(nil), ids...)
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	out := map[int64]models.AuthorSummary{}
	for _, id := range ids {
		if s, ok := f.students[id]; ok {
			out[id] = models.AuthorSummary{ID: s.ID, Name: s.Name, AvatarURL: s.ProfilePicURL}
		}
	}
	return out, nil
}

func (f *fakeRoster) conflict(id int64, ern, email string) error {
	for _, s := range f.students {
		if s.ID == id {
			continue
		}
		if ern != "" && s.ERNNumber == ern {
			return repositories.ErrERNExists
		}
		if strings.EqualFold(s.Email, email) {
			return repositories.ErrEmailExists
		}
	}
	return nil
}

func (f *fakeRoster) Create(_ context.Context, s *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.conflict(0, s.ERNNumber, s.Email); err != nil {
		return err
	}
	f.nextStudent++
	s.ID = f.nextStudent
	s.CreatedAt = f.tick()
	s.UpdatedAt = s.CreatedAt
	f.students[s.ID] = *s
	return nil
}

func (f *fakeRoster) mutate(id int64, fn func(*models.Student) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return repositories.ErrStudentNotFound
	}
	if err := fn(&s); err != nil {
		return err
	}
	s.UpdatedAt = f.tick()
	f.students[id] = s
	return nil
}

func (f *fakeRoster) UpdateRosterFields(_ context.Context, id int64, r repositories.RosterFields) error {
	return f.mutate(id, func(s *models.Student) error {
		if err := f.conflict(id, "", r.Email); err != nil {
			return err
		}
		s.Name, s.Email, s.Branch, s.BatchYear, s.Section, s.MobileNumber = r.Name, r.Email, r.Branch, r.BatchYear, r.Section, r.MobileNumber
		return nil
	})
}

func (f *fakeRoster) UpdatePassword(_ context.Context, id int64, hash string, firstLogin bool) error {
	return f.mutate(id, func(s *models.Student) error {
		s.Password = &hash
		s.FirstLogin = firstLogin
		return nil
	})
}

func (f *fakeRoster) UpdateProfilePicture(_ context.Context, id int64, url, publicID *string) error {
	return f.mutate(id, func(s *models.Student) error {
		s.ProfilePicURL, s.ProfilePicPublicID = url, publicID
		return nil
	})
}

func (f *fakeRoster) UpdateMobileNumber(_ context.Context, id int64, mobile *string) error {
	return f.mutate(id, func(s *models.Student) error {
		s.MobileNumber = mobile
		return nil
	})
}

func (f *fakeRoster) UpdateInterests(_ context.Context, id int64, interests models.Interests) error {
	return f.mutate(id, func(s *models.Student) error {
		s.Interests = interests
		return nil
	})
}

func (f *fakeRoster) Search(_ context.Context, query string, excludeID int64, limit uint64) ([]models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Student
	q := strings.ToLower(query)
	for _, s := range f.students {
		if s.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(s.Name), q) || strings.HasPrefix(strings.ToLower(s.ERNNumber), q) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRoster) CountExisting(_ context.Context, ids []int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, id := range ids {
		if _, ok := f.students[id]; ok {
			n++
		}
	}
	return n, nil
}

func (f *fakeRoster) pairConversations(a, b int64) []int64 {
	var ids []int64
	for id, members := range f.conversations {
		if len(members) != 2 {
			continue
		}
		if (members[0] == a && members[1] == b) || (members[0] == b && members[1] == a) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeRoster) FindPairConversation(_ context.Context, a, b int64) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.pairConversations(a, b)
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (f *fakeRoster) CreateConversation(_ context.Context, participantIDs []int64) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextConv++
	created := f.tick()
	f.conversations[f.nextConv] = append([]int64(nil), participantIDs...)
	f.convCreated[f.nextConv] = created
	return &models.Conversation{ID: f.nextConv, CreatedAt: created, ParticipantIDs: participantIDs}, nil
}

func (f *fakeRoster) InsertMessage(_ context.Context, m *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.conversations[m.ConversationID]; !ok {
		return errors.New("foreign key violation")
	}
	f.nextMessage++
	m.ID = f.nextMessage
	m.CreatedAt = f.tick()
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeRoster) ListPairMessages(_ context.Context, a, b int64, limit uint64) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	convs := map[int64]bool{}
	for _, id := range f.pairConversations(a, b) {
		convs[id] = true
	}
	out := []models.Message{}
	for i := len(f.messages) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		m := f.messages[i]
		if convs[m.ConversationID] {
			m.SenderName = f.students[m.SenderID].Name
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRoster) ListConversations(_ context.Context, studentID int64) ([]models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Conversation{}
	for id, members := range f.conversations {
		for _, m := range members {
			if m != studentID {
				continue
			}
			c := models.Conversation{ID: id, CreatedAt: f.convCreated[id], ParticipantIDs: members}
			for _, p := range members {
				c.ParticipantNames = append(c.ParticipantNames, f.students[p].Name)
			}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakePosts is an in-memory content store for posts.
type fakePosts struct {
	posts       []models.Post
	feedErr     error
	deleteErr   error
	lastToday   string
	deleteCalls int
}

func (f *fakePosts) sorted() []models.Post {
	out := append([]models.Post(nil), f.posts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakePosts) Feed(_ context.Context, skip, limit int64) ([]models.Post, int64, error) {
	if f.feedErr != nil {
		return nil, 0, f.feedErr
	}
	if skip < 0 {
		return nil, 0, errors.New("(BadValue) skip value must be non-negative")
	}
	all := f.sorted()
	total := int64(len(all))
	if skip >= total {
		return []models.Post{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (f *fakePosts) ByAuthor(_ context.Context, authorID int64) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range f.sorted() {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePosts) Upcoming(_ context.Context, today string) ([]models.Post, error) {
	f.lastToday = today
	out := []models.Post{}
	for _, p := range f.posts {
		date, _ := p.Details["date"].(string)
		if (p.Category == models.CategoryEvent || p.Category == models.CategoryContest) && date >= today {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePosts) index(id primitive.ObjectID, authorID *int64) int {
	for i, p := range f.posts {
		if p.ID == id && (authorID == nil || p.AuthorID == *authorID) {
			return i
		}
	}
	return -1
}

func (f *fakePosts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	i := f.index(id, nil)
	if i < 0 {
		return nil, repositories.ErrPostNotFound
	}
	p := f.posts[i]
	return &p, nil
}

func (f *fakePosts) FindByIDAndAuthor(_ context.Context, id primitive.ObjectID, authorID int64) (*models.Post, error) {
	i := f.index(id, &authorID)
	if i < 0 {
		return nil, repositories.ErrPostNotFound
	}
	p := f.posts[i]
	return &p, nil
}

func (f *fakePosts) Insert(_ context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.posts = append(f.posts, *p)
	return nil
}

func (f *fakePosts) Update(_ context.Context, id primitive.ObjectID, authorID int64, u repositories.PostUpdate) error {
	i := f.index(id, &authorID)
	if i < 0 {
		return repositories.ErrPostNotFound
	}
	updated := u.UpdatedAt
	f.posts[i].Category = u.Category
	f.posts[i].Description = u.Description
	f.posts[i].Details = u.Details
	f.posts[i].UpdatedAt = &updated
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id primitive.ObjectID, authorID int64) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	i := f.index(id, &authorID)
	if i < 0 {
		return repositories.ErrPostNotFound
	}
	f.posts = append(f.posts[:i], f.posts[i+1:]...)
	return nil
}

// fakeStorage records object store calls.
type fakeStorage struct {
	uploads   []filestorage.UploadInput
	uploadErr error
	deleted   []string
	deleteErr error
	body      []byte
}

func (f *fakeStorage) Upload(_ context.Context, in filestorage.UploadInput) (*filestorage.UploadResult, error) {
	f.uploads = append(f.uploads, in)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	body, err := io.ReadAll(in.Reader)
	if err != nil {
		return nil, err
	}
	f.body = body
	publicID := in.Folder + "/file"
	return &filestorage.UploadResult{
		URL:          "https://cdn.test/" + publicID,
		PublicID:     publicID,
		ResourceType: in.ResourceType,
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, publicID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeStorage) PublicIDFromURL(u string) string {
	return strings.TrimPrefix(u, "https://cdn.test/")
}

// fakeNotifier fails for the addresses in failFor.
type fakeNotifier struct {
	sent    []email.CredentialsMessage
	failFor map[string]bool
}

func (f *fakeNotifier) SendLoginCredentials(_ context.Context, msg email.CredentialsMessage) (string, error) {
	f.sent = append(f.sent, msg)
	if f.failFor[msg.StudentEmail] {
		return "", errors.New("smtp: connection refused")
	}
	return "msg-" + msg.StudentEmail, nil
}

// fakeAudit collects audit documents.
type fakeAudit struct {
	emails   []models.EmailLog
	uploads  []models.UploadLog
	messages []models.MessageLog
}

func (f *fakeAudit) InsertEmailLog(_ context.Context, e *models.EmailLog) error {
	f.emails = append(f.emails, *e)
	return nil
}

func (f *fakeAudit) InsertUploadLog(_ context.Context, e *models.UploadLog) error {
	f.uploads = append(f.uploads, *e)
	return nil
}

func (f *fakeAudit) InsertMessageLog(_ context.Context, e *models.MessageLog) error {
	f.messages = append(f.messages, *e)
	return nil
}

// fakeInterests is a fixed catalog.
type fakeInterests struct {
	catalog []models.InterestCategory
}

func (f *fakeInterests) List(_ context.Context) ([]models.InterestCategory, error) {
	return f.catalog, nil
}

func (f *fakeInterests) SeedIfEmpty(_ context.Context, catalog []models.InterestCategory) (int, error) {
	if len(f.catalog) > 0 {
		return 0, nil
	}
	f.catalog = catalog
	return len(catalog), nil
}

// fakePublisher records deliveries.
type fakePublisher struct {
	deliveries []websocket.Delivery
}

func (f *fakePublisher) Publish(_ context.Context, d websocket.Delivery) error {
	f.deliveries = append(f.deliveries, d)
	return nil
}

func strPtr(s string) *string { return &s }
