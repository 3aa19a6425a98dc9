package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/opdss/excelsvc/excel/export"
)

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	New(zap.NewNop(), Config{MaxBodyBytes: 1 << 20}).Register(engine)
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGenerateExcel(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodPost, "/generate-excel",
		`{"data":[{"id":1,"name":"Ann"},{"id":2,"name":"Bo"}],"options":{"filename":"users"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, export.ExcelContentType, w.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="users.xlsx"`, w.Header().Get("Content-Disposition"))

	fp, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = fp.Close() }()
	rows, err := fp.GetRows("Sheet1")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"id", "name"},
		{"1", "Ann"},
		{"2", "Bo"},
	}, rows)
}

func TestGenerateExcelOptions(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodPost, "/generate-excel",
		`{"data":[{"id":1,"name":"Ann"}],"options":{"filename":"r.xlsx","sheetName":"Report","headers":["name","id"]}}`)

	require.Equal(t, http.StatusOK, w.Code)
	fp, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = fp.Close() }()
	require.Equal(t, []string{"Report"}, fp.GetSheetList())
	rows, err := fp.GetRows("Report")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"name", "id"},
		{"Ann", "1"},
	}, rows)
}

func TestGenerateExcelBadJSON(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodPost, "/generate-excel", `{"data":[`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Message)
}

func TestGenerateCsv(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodPost, "/generate-csv",
		`{"data":[{"id":1,"name":"Ann"}],"options":{"filename":"users"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	rows, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"id", "name"},
		{"1", "Ann"},
	}, rows)
}

func TestHealth(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "healthy", resp.Status)
	require.Equal(t, ServiceName, resp.Service)
	require.NotEmpty(t, resp.Version)
}

func TestStatus(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodGet, "/status", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, ServiceName, resp["service"])
	require.Equal(t, "running", resp["status"])
	require.NotEmpty(t, resp["timestamp"])
	require.NotEmpty(t, resp["memory_usage"])
}

func TestTestEndpoint(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodGet, "/test", "")

	require.Equal(t, http.StatusOK, w.Code)
	fp, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = fp.Close() }()
	require.Equal(t, []string{"Test"}, fp.GetSheetList())
	rows, err := fp.GetRows("Test")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"age", "city", "email", "id", "name"}, rows[0])
}

func TestNotFound(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodGet, "/nope", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
}

func TestMethodNotAllowed(t *testing.T) {
	engine := testEngine(t)
	w := do(t, engine, http.MethodGet, "/generate-excel", "")

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
}

func TestBodyTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	New(zap.NewNop(), Config{MaxBodyBytes: 16}).Register(engine)

	w := do(t, engine, http.MethodPost, "/generate-excel",
		`{"data":[{"field":"way too long for the configured limit"}],"options":{}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttachmentName(t *testing.T) {
	require.Equal(t, "export.xlsx", attachmentName("", "xlsx"))
	require.Equal(t, "report.xlsx", attachmentName("report", "xlsx"))
	require.Equal(t, "report.xlsx", attachmentName("report.xlsx", "xlsx"))
	require.Equal(t, "evil.xlsx", attachmentName("../../evil", "xlsx"))
	require.Equal(t, "a_b.csv", attachmentName("a\"b", "csv"))
}
