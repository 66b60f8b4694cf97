package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"

	"github.com/rta-dms/pta-archive-api/internal/dto"
	"github.com/rta-dms/pta-archive-api/internal/middleware"
	"github.com/rta-dms/pta-archive-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()
}

// withClaims injects verified claims the way the JWT middleware would.
func withClaims(claims *models.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextClaimsKey, claims)
		c.Next()
	}
}

func editorClaims() *models.Claims {
	return &models.Claims{
		Username:      "jsmith",
		SecurityLevel: models.SecurityEditor,
		SessionID:     "sess-1",
	}
}

type stubTokens struct {
	dst string
	err error
}

func (s *stubTokens) DST(context.Context, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.dst, nil
}

type stubArchiver struct {
	archives  map[int64]*models.Archive
	created   *dto.CreateArchiveRequest
	updated   *dto.UpdateArchiveRequest
	deleted   []int64
	createErr error
}

func (s *stubArchiver) List(context.Context, models.ArchiveFilter) ([]models.Archive, int, error) {
	list := make([]models.Archive, 0, len(s.archives))
	for _, archive := range s.archives {
		list = append(list, *archive)
	}
	return list, len(list), nil
}

func (s *stubArchiver) Get(_ context.Context, id int64) (*models.Archive, error) {
	archive, ok := s.archives[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "archive not found")
	}
	return archive, nil
}

func (s *stubArchiver) Create(_ context.Context, _, _ string, req dto.CreateArchiveRequest) (*models.Archive, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &req
	return &models.Archive{SystemID: 42, EmpNo: req.EmpNo, StatusID: req.StatusID}, nil
}

func (s *stubArchiver) Update(_ context.Context, _, _ string, id int64, req dto.UpdateArchiveRequest) (*models.Archive, error) {
	s.updated = &req
	return &models.Archive{SystemID: id, StatusID: req.StatusID}, nil
}

func (s *stubArchiver) Delete(_ context.Context, _ string, id int64) error {
	if _, ok := s.archives[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "archive not found")
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestArchiveHandlerCreate(t *testing.T) {
	archiver := &stubArchiver{archives: map[int64]*models.Archive{}}
	h := NewArchiveHandler(archiver, &stubTokens{dst: "DST-1"}, nil, nil, nil)

	router := gin.New()
	router.POST("/archives", withClaims(editorClaims()), h.Create)

	w := doJSON(t, router, http.MethodPost, "/archives", dto.CreateArchiveRequest{
		EmpNo:    "1001",
		StatusID: 1,
		Documents: []dto.DocumentInput{
			{DocTypeID: 1, FileName: "contract.pdf", Content: "UERGLURBVEE="},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, archiver.created)
	require.Equal(t, "1001", archiver.created.EmpNo)
}

func TestArchiveHandlerCreateRejectsMissingDocuments(t *testing.T) {
	archiver := &stubArchiver{archives: map[int64]*models.Archive{}}
	h := NewArchiveHandler(archiver, &stubTokens{dst: "DST-1"}, nil, nil, nil)

	router := gin.New()
	router.POST("/archives", withClaims(editorClaims()), h.Create)

	w := doJSON(t, router, http.MethodPost, "/archives", dto.CreateArchiveRequest{
		EmpNo:    "1001",
		StatusID: 1,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Nil(t, archiver.created)
}

func TestArchiveHandlerCreateSessionExpired(t *testing.T) {
	archiver := &stubArchiver{archives: map[int64]*models.Archive{}}
	h := NewArchiveHandler(archiver, &stubTokens{err: appErrors.ErrSessionExpired}, nil, nil, nil)

	router := gin.New()
	router.POST("/archives", withClaims(editorClaims()), h.Create)

	w := doJSON(t, router, http.MethodPost, "/archives", dto.CreateArchiveRequest{
		EmpNo:    "1001",
		StatusID: 1,
		Documents: []dto.DocumentInput{
			{DocTypeID: 1, FileName: "contract.pdf", Content: "UERGLURBVEE="},
		},
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "SESSION_EXPIRED", envelope.Error.Code)
}

func TestArchiveHandlerCreateConflict(t *testing.T) {
	archiver := &stubArchiver{archives: map[int64]*models.Archive{}, createErr: appErrors.ErrDuplicateArchive}
	h := NewArchiveHandler(archiver, &stubTokens{dst: "DST-1"}, nil, nil, nil)

	router := gin.New()
	router.POST("/archives", withClaims(editorClaims()), h.Create)

	w := doJSON(t, router, http.MethodPost, "/archives", dto.CreateArchiveRequest{
		EmpNo:    "1001",
		StatusID: 1,
		Documents: []dto.DocumentInput{
			{DocTypeID: 1, FileName: "contract.pdf", Content: "UERGLURBVEE="},
		},
	})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestArchiveHandlerGetNotFound(t *testing.T) {
	h := NewArchiveHandler(&stubArchiver{archives: map[int64]*models.Archive{}}, &stubTokens{}, nil, nil, nil)

	router := gin.New()
	router.GET("/archives/:id", withClaims(editorClaims()), h.Get)

	w := doJSON(t, router, http.MethodGet, "/archives/99", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestArchiveHandlerDelete(t *testing.T) {
	archiver := &stubArchiver{archives: map[int64]*models.Archive{
		7: {SystemID: 7, EmpNo: "1001"},
	}}
	h := NewArchiveHandler(archiver, &stubTokens{dst: "DST-1"}, nil, nil, nil)

	router := gin.New()
	router.DELETE("/archives/:id", withClaims(editorClaims()), h.Delete)

	w := doJSON(t, router, http.MethodDelete, "/archives/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []int64{7}, archiver.deleted)

	w = doJSON(t, router, http.MethodDelete, "/archives/99", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireEditorBlocksViewer(t *testing.T) {
	h := NewArchiveHandler(&stubArchiver{archives: map[int64]*models.Archive{}}, &stubTokens{dst: "DST-1"}, nil, nil, nil)

	viewer := &models.Claims{Username: "viewer1", SecurityLevel: models.SecurityViewer, SessionID: "sess-2"}

	router := gin.New()
	router.POST("/archives", withClaims(viewer), middleware.RequireEditor(), h.Create)

	w := doJSON(t, router, http.MethodPost, "/archives", dto.CreateArchiveRequest{
		EmpNo:    "1001",
		StatusID: 1,
		Documents: []dto.DocumentInput{
			{DocTypeID: 1, FileName: "contract.pdf", Content: "UERGLURBVEE="},
		},
	})

	require.Equal(t, http.StatusForbidden, w.Code)
}
