package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gridops/outage-gin/internal/api"
	"github.com/gridops/outage-gin/internal/batch"
	"github.com/gridops/outage-gin/internal/importer"
	"github.com/gridops/outage-gin/internal/model"
	"github.com/gridops/outage-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImportService 可编程的导入服务
type fakeImportService struct {
	result       *model.ImportResult
	err          error
	pending      []model.DraftRequest
	removeErr    error
	lastCaller   service.Caller
	lastFilename string
	cleared      bool
}

func (f *fakeImportService) ImportFile(ctx context.Context, caller service.Caller,
	filename string, size int64, file io.Reader) (*model.ImportResult, error) {
	f.lastCaller = caller
	f.lastFilename = filename
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeImportService) Pending(caller service.Caller) []model.DraftRequest {
	return f.pending
}

func (f *fakeImportService) RemovePending(caller service.Caller, index int) error {
	return f.removeErr
}

func (f *fakeImportService) ClearPending(caller service.Caller) {
	f.cleared = true
}

func (f *fakeImportService) UpdateLimits(limits importer.Limits, leadDays int) {}

func importRouter(svc service.ImportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := api.NewImportController(svc)
	router.POST("/api/v1/imports", ctrl.Import)
	router.GET("/api/v1/imports/pending", ctrl.Pending)
	router.DELETE("/api/v1/imports/pending", ctrl.ClearPending)
	router.DELETE("/api/v1/imports/pending/:index", ctrl.RemovePending)
	return router
}

func uploadRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// TestImportUpload 测试文件上传导入
func TestImportUpload(t *testing.T) {
	svc := &fakeImportService{result: &model.ImportResult{TotalRows: 2, Accepted: 2}}
	router := importRouter(svc)

	req := uploadRequest(t, "/api/v1/imports", "import.csv", "header\nrow\n")
	req.Header.Set("X-User", "user-001")
	req.Header.Set("X-Org-Unit", "N1")
	req.Header.Set("X-Role", "admin")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "import.csv", svc.lastFilename)
	assert.Equal(t, "user-001", svc.lastCaller.UserID)
	assert.Equal(t, importer.RoleAdmin, svc.lastCaller.Role)

	var resp api.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
}

// TestImportMissingFile 测试缺少上传文件
func TestImportMissingFile(t *testing.T) {
	router := importRouter(&fakeImportService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestImportPendingNotEmpty 测试待提交列表非空时返回 409
func TestImportPendingNotEmpty(t *testing.T) {
	router := importRouter(&fakeImportService{err: batch.ErrPendingNotEmpty})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/api/v1/imports", "import.csv", "x"))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pending-not-empty", resp.Message)
}

// TestImportFileLevelRejection 测试文件级拒绝返回 400
func TestImportFileLevelRejection(t *testing.T) {
	cases := []error{
		importer.ErrUnsupportedFormat,
		importer.ErrFileTooLarge,
		importer.ErrTooManyRows,
		importer.ErrEmptyFile,
		importer.ErrUnreadableFile,
	}
	for _, cause := range cases {
		router := importRouter(&fakeImportService{err: cause})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "/api/v1/imports", "import.csv", "x"))
		assert.Equal(t, http.StatusBadRequest, rec.Code, cause.Error())
	}
}

// TestPendingEndpoints 测试待提交列表端点
func TestPendingEndpoints(t *testing.T) {
	svc := &fakeImportService{
		pending: []model.DraftRequest{{
			OutageDate:  time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
			StartTime:   "08:00",
			EndTime:     "09:00",
			EquipmentID: "TX001",
		}},
	}
	router := importRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/imports/pending", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TX001")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/imports/pending/0", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/imports/pending/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.removeErr = batch.ErrIndexOutOfRange
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/imports/pending/9", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/imports/pending", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.cleared)
}
