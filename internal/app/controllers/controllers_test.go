package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/app/services"
	"github.com/yigit/collegesocial/internal/middleware"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
	"github.com/yigit/collegesocial/internal/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asStudent stands in for JWTAuth.
func asStudent(id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextStudentID, id)
		c.Next()
	}
}

func do(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	return do(r, method, path, strings.NewReader(body), "application/json")
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	return body.Error
}

type stubPosts struct {
	created   dto.CreatePostRequest
	authorID  int64
	page      helpers.Page
	createErr error
	deleteErr error
	feed      *services.FeedPage
}

func (s *stubPosts) Feed(_ context.Context, page helpers.Page) (*services.FeedPage, error) {
	s.page = page
	return s.feed, nil
}

func (s *stubPosts) ByAuthor(_ context.Context, authorID int64) ([]models.Post, error) {
	s.authorID = authorID
	return []models.Post{}, nil
}

func (s *stubPosts) Upcoming(context.Context) ([]models.Post, error) {
	return []models.Post{{Category: models.CategoryEvent, Description: "Hackathon"}}, nil
}

func (s *stubPosts) Get(_ context.Context, rawID string) (*models.Post, error) {
	return nil, apperrors.NewNotFoundOrUnauthorizedError("Post not found")
}

func (s *stubPosts) Create(_ context.Context, authorID int64, req dto.CreatePostRequest) (string, error) {
	s.authorID, s.created = authorID, req
	if s.createErr != nil {
		return "", s.createErr
	}
	return "665f1c2e9b1d8a0012345678", nil
}

func (s *stubPosts) Update(context.Context, int64, string, dto.UpdatePostRequest) error { return nil }

func (s *stubPosts) Delete(_ context.Context, authorID int64, _ string) error {
	s.authorID = authorID
	return s.deleteErr
}

func postRouter(posts *stubPosts, authed bool) *gin.Engine {
	r := gin.New()
	c := NewPostController(posts, 10, zerolog.Nop())
	g := r.Group("/api")
	if authed {
		g.Use(asStudent(7))
	}
	g.POST("/posts", c.CreatePost)
	g.GET("/posts", c.GetFeed)
	g.GET("/posts/user", c.GetMyPosts)
	g.GET("/posts/:id", c.GetPost)
	g.DELETE("/posts/:id", c.DeletePost)
	g.GET("/events", c.GetEvents)
	return r
}

func TestCreatePost(t *testing.T) {
	posts := &stubPosts{}
	w := doJSON(postRouter(posts, true), http.MethodPost, "/api/posts", `{"category":"general","description":"hello"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"postId":"665f1c2e9b1d8a0012345678"}`, w.Body.String())
	assert.Equal(t, int64(7), posts.authorID)
	assert.Equal(t, "hello", posts.created.Description)
}

func TestCreatePostErrors(t *testing.T) {
	posts := &stubPosts{createErr: apperrors.NewValidationError("Missing required fields: venue, date").WithField("details")}

	w := doJSON(postRouter(posts, true), http.MethodPost, "/api/posts", `{"category":"event","description":"fest"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	detail := errorBody(t, w)
	assert.Equal(t, "Missing required fields: venue, date", detail.Message)
	assert.Equal(t, "details", detail.Field)

	w = doJSON(postRouter(posts, true), http.MethodPost, "/api/posts", `{"description":"no category"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(postRouter(posts, false), http.MethodPost, "/api/posts", `{"category":"general","description":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetFeedPassesPagination(t *testing.T) {
	posts := &stubPosts{feed: &services.FeedPage{Posts: []models.Post{}, HasMore: true, Total: 25, Page: 2, Limit: 5}}

	w := do(postRouter(posts, true), http.MethodGet, "/api/posts?page=2&limit=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, helpers.Page{Page: 2, Limit: 5, Skip: 5}, posts.page)

	var body dto.FeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.HasMore)
	assert.Equal(t, int64(25), body.Total)
	assert.NotNil(t, body.Posts)
}

func TestGetPostNotFound(t *testing.T) {
	w := do(postRouter(&stubPosts{}, true), http.MethodGet, "/api/posts/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errorBody(t, w).Code)
}

func TestDeletePostOutcomes(t *testing.T) {
	posts := &stubPosts{}
	w := do(postRouter(posts, true), http.MethodDelete, "/api/posts/abc", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	posts.deleteErr = apperrors.NewNotFoundOrUnauthorizedError("Post not found or unauthorized")
	w = do(postRouter(posts, true), http.MethodDelete, "/api/posts/abc", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	posts.deleteErr = apperrors.CollaboratorError("failed to delete post media", errors.New("cloudinary down"))
	w = do(postRouter(posts, true), http.MethodDelete, "/api/posts/abc", nil, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "cloudinary down")
}

func TestGetEvents(t *testing.T) {
	w := do(postRouter(&stubPosts{}, true), http.MethodGet, "/api/events", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.EventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, "Hackathon", body.Events[0].Description)
}

type stubUploader struct {
	got services.MediaUpload
	err error
}

func (s *stubUploader) Upload(_ context.Context, in services.MediaUpload) (*filestorage.UploadResult, error) {
	s.got = in
	if s.err != nil {
		return nil, s.err
	}
	return &filestorage.UploadResult{URL: "https://cdn.test/posts/7/x", PublicID: "posts/7/x", ResourceType: filestorage.ResourceImage}, nil
}

type stubImporter struct {
	body   string
	result *services.OnboardingResult
	err    error
}

func (s *stubImporter) Import(_ context.Context, r io.Reader) (*services.OnboardingResult, error) {
	b, _ := io.ReadAll(r)
	s.body = string(b)
	return s.result, s.err
}

func multipartBody(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadMedia(t *testing.T) {
	uploader := &stubUploader{}
	r := gin.New()
	c := NewUploadController(uploader, &stubImporter{}, zerolog.Nop())
	r.POST("/api/upload", asStudent(7), c.Upload)

	body, ct := multipartBody(t, map[string]string{"type": "post"}, "poster.png", "png-bytes")
	w := do(r, http.MethodPost, "/api/upload", body, ct)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"url":"https://cdn.test/posts/7/x","public_id":"posts/7/x","resource_type":"image"}`, w.Body.String())
	assert.Equal(t, int64(7), uploader.got.StudentID)
	assert.Equal(t, "poster.png", uploader.got.Filename)

	body, ct = multipartBody(t, map[string]string{"type": "avatar"}, "poster.png", "png-bytes")
	w = do(r, http.MethodPost, "/api/upload", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "type", errorBody(t, w).Field)

	body, ct = multipartBody(t, map[string]string{"type": "profile"}, "", "")
	w = do(r, http.MethodPost, "/api/upload", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file", errorBody(t, w).Field)
}

func TestUploadRoster(t *testing.T) {
	importer := &stubImporter{result: &services.OnboardingResult{Total: 1, Created: 1, Message: "Processed 1 records (1 new, 0 updated)"}}
	r := gin.New()
	c := NewUploadController(&stubUploader{}, importer, zerolog.Nop())
	r.POST("/api/admin/upload", c.UploadRoster)

	csv := "name,email,ern_number,branch,batch_year,section\nAsha Rao,asha@x.edu,E100,CSE,2026,A\n"
	body, ct := multipartBody(t, nil, "roster.csv", csv)
	w := do(r, http.MethodPost, "/api/admin/upload", body, ct)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, csv, importer.body)

	var resp dto.RosterUploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Processed 1 records (1 new, 0 updated)", resp.Message)
	assert.Equal(t, 1, resp.Created)

	importer.err = apperrors.NewConflictError("line 6: email already in use")
	body, ct = multipartBody(t, nil, "roster.csv", csv)
	w = do(r, http.MethodPost, "/api/admin/upload", body, ct)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, errorBody(t, w).Message, "line 6")
}

type stubMessaging struct {
	sent    []string
	history []models.Message
	conv    *models.Conversation
	err     error
}

func (s *stubMessaging) Send(_ context.Context, senderID, receiverID int64, content string) (*models.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, content)
	return &models.Message{ID: 31, ConversationID: 4, SenderID: senderID, Content: content, CreatedAt: time.Now()}, nil
}

func (s *stubMessaging) History(context.Context, int64, int64) ([]models.Message, error) {
	return s.history, s.err
}

func (s *stubMessaging) CreateConversation(context.Context, int64, []int64) (*models.Conversation, error) {
	return s.conv, s.err
}

func (s *stubMessaging) Conversations(context.Context, int64) ([]models.Conversation, error) {
	return []models.Conversation{}, s.err
}

func messageRouter(m *stubMessaging) *gin.Engine {
	r := gin.New()
	c := NewMessageController(m, nil, zerolog.Nop())
	g := r.Group("/api", asStudent(1))
	g.POST("/messages", c.SendMessage)
	g.GET("/messages", c.GetMessages)
	g.POST("/conversations", c.CreateConversation)
	g.GET("/conversations", c.ListConversations)
	return r
}

func TestSendMessage(t *testing.T) {
	m := &stubMessaging{}
	w := doJSON(messageRouter(m), http.MethodPost, "/api/messages", `{"receiverId":2,"content":"hi"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"conversationId":4,"messageId":31}`, w.Body.String())

	w = doJSON(messageRouter(m), http.MethodPost, "/api/messages", `{"content":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.err = apperrors.NewNotFoundOrUnauthorizedError("Recipient not found")
	w = doJSON(messageRouter(m), http.MethodPost, "/api/messages", `{"receiverId":99,"content":"hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMessages(t *testing.T) {
	m := &stubMessaging{}

	w := do(messageRouter(m), http.MethodGet, "/api/messages?with=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"messages":[]}`, w.Body.String())

	w = do(messageRouter(m), http.MethodGet, "/api/messages", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "with", errorBody(t, w).Field)
}

func TestCreateConversationEndpoint(t *testing.T) {
	m := &stubMessaging{conv: &models.Conversation{ID: 9}}
	w := doJSON(messageRouter(m), http.MethodPost, "/api/conversations", `{"participant_ids":[2,3]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"conversationId":9}`, w.Body.String())

	w = doJSON(messageRouter(m), http.MethodPost, "/api/conversations", `{"participant_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubProfiles struct {
	student *models.Student
	query   string
}

func (s *stubProfiles) Get(context.Context, int64) (*models.Student, error) { return s.student, nil }

func (s *stubProfiles) Card(_ context.Context, id int64) (dto.StudentCard, error) {
	if id != s.student.ID {
		return dto.StudentCard{}, apperrors.NewNotFoundOrUnauthorizedError("Student not found")
	}
	return dto.NewStudentCard(s.student), nil
}

func (s *stubProfiles) Search(_ context.Context, _ int64, query string) ([]dto.StudentCard, error) {
	s.query = query
	return []dto.StudentCard{}, nil
}

func (s *stubProfiles) Update(context.Context, int64, dto.UpdateProfileRequest) (*models.Student, error) {
	return s.student, nil
}

type stubCatalog struct{}

func (stubCatalog) List(context.Context) ([]models.InterestCategory, error) { return nil, nil }

func TestProfileEndpoints(t *testing.T) {
	profiles := &stubProfiles{student: &models.Student{ID: 2, Name: "Ravi Kumar", ERNNumber: "E101", Interests: models.Interests{}}}
	c := NewProfileController(profiles, stubCatalog{})
	r := gin.New()
	g := r.Group("/api", asStudent(1))
	g.GET("/user/profile", c.GetProfile)
	g.GET("/students/search", c.SearchStudents)
	g.GET("/students/:id", c.GetStudent)
	g.GET("/interests", c.ListInterests)

	w := do(r, http.MethodGet, "/api/user/profile", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"interests":{}`)
	assert.NotContains(t, w.Body.String(), "password")

	w = do(r, http.MethodGet, "/api/students/2", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/api/students/3", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodGet, "/api/students/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/students/search?q=ravi", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ravi", profiles.query)

	w = do(r, http.MethodGet, "/api/interests", nil, "")
	assert.JSONEq(t, `{"success":true,"categories":[]}`, w.Body.String())
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthz(t *testing.T) {
	r := gin.New()
	healthy := NewHealthController(map[string]Pinger{"postgres": stubPinger{}, "mongo": stubPinger{}})
	degraded := NewHealthController(map[string]Pinger{"postgres": stubPinger{}, "mongo": stubPinger{err: errors.New("timeout")}})
	r.GET("/ping", healthy.Ping)
	r.GET("/healthz", healthy.Healthz)
	r.GET("/degraded", degraded.Healthz)

	w := do(r, http.MethodGet, "/ping", nil, "")
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = do(r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/degraded", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","services":{"postgres":"up","mongo":"down"}}`, w.Body.String())
}
