package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/opdss/excelsvc/excel/export"
	"github.com/opdss/excelsvc/version"
)

var Error = errs.Class("api")

// ServiceName 服务标识，用于健康检查和状态接口
const ServiceName = "excel-service"

type Config struct {
	MaxBodyBytes int64 `help:"请求体大小上限,字节" default:"104857600"`
}

type API struct {
	log  *zap.Logger
	conf Config
}

func New(log *zap.Logger, conf Config) *API {
	return &API{
		log:  log,
		conf: conf,
	}
}

// Register 挂载路由，未知路由404、方法不匹配405，都返回统一信封
func (a *API) Register(engine *gin.Engine) {
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{Success: false, Message: "Not Found"})
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, Response{Success: false, Message: "Method Not Allowed"})
	})

	engine.POST("/generate-excel", a.GenerateExcel)
	engine.POST("/generate-csv", a.GenerateCsv)
	engine.GET("/health", a.Health)
	engine.GET("/status", a.Status)
	engine.GET("/test", a.Test)
}

// generateFn 与 export.ToExcelBytes / export.ToCsvBytes 的签名一致
type generateFn func(ctx context.Context, records []any, opt ...export.Option) ([]byte, error)

// GenerateExcel 把请求体中的JSON记录数组转成xlsx文件返回
// 解码失败400，生成失败500，成功时整个文件缓冲后一次性写出
func (a *API) GenerateExcel(c *gin.Context) {
	req, err := a.decodeRequest(c)
	if err != nil {
		a.fail(c, http.StatusBadRequest, err)
		return
	}
	a.generate(c, req, export.ExcelSuffix, export.ExcelContentType, export.ToExcelBytes)
}

// GenerateCsv 与 GenerateExcel 相同的请求形状，产出csv
func (a *API) GenerateCsv(c *gin.Context) {
	req, err := a.decodeRequest(c)
	if err != nil {
		a.fail(c, http.StatusBadRequest, err)
		return
	}
	a.generate(c, req, export.CsvSuffix, export.CsvContentType, export.ToCsvBytes)
}

// Health 健康检查
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: version.Build.Version,
	})
}

// Status 服务运行状态
func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":      ServiceName,
		"status":       "running",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"memory_usage": memoryUsage(),
	})
}

// Test 用固定的两条示例记录走一遍完整的生成流程
func (a *API) Test(c *gin.Context) {
	a.generate(c, &ExportRequest{
		Data: sampleRecords(),
		Options: ExportOptions{
			Filename:  "test.xlsx",
			SheetName: "Test",
		},
	}, export.ExcelSuffix, export.ExcelContentType, export.ToExcelBytes)
}

func (a *API) generate(c *gin.Context, req *ExportRequest, suffix, contentType string, fn generateFn) {
	start := time.Now()
	log := a.log.With(
		zap.String("request_id", c.GetString("request_id")),
		zap.Int("records", len(req.Data)),
	)
	log.Info("starting generation")

	data, err := fn(c.Request.Context(), req.Data, a.exportOptions(req, log)...)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		a.fail(c, http.StatusInternalServerError, err)
		return
	}
	log.Info("generation finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(data)),
	)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName(req.Options.Filename, suffix)))
	c.Data(http.StatusOK, contentType, data)
}

// decodeRequest 手动解码请求体：数字必须保留原始文本（json.Number），
// gin的绑定做不到这一点。体积上限由MaxBytesReader强制
func (a *API) decodeRequest(c *gin.Context) (*ExportRequest, error) {
	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, a.conf.MaxBodyBytes))
	dec.UseNumber()
	var req ExportRequest
	if err := dec.Decode(&req); err != nil {
		return nil, Error.Wrap(err)
	}
	return &req, nil
}

func (a *API) exportOptions(req *ExportRequest, log *zap.Logger) []export.Option {
	opts := []export.Option{
		export.WithProgress(func(rows int) {
			log.Info("generation progress", zap.Int("rows", rows))
		}),
	}
	if req.Options.SheetName != "" {
		opts = append(opts, export.WithSheetName(req.Options.SheetName))
	}
	if len(req.Options.Headers) > 0 {
		opts = append(opts, export.WithHeaders(req.Options.Headers))
	}
	return opts
}

func (a *API) fail(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, Response{Success: false, Message: err.Error()})
}

// attachmentName 清理调用方文件名用于Content-Disposition，缺省export.<suffix>
func attachmentName(name, suffix string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '\r', '\n':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "export"
	}
	if !strings.HasSuffix(name, "."+suffix) {
		name += "." + suffix
	}
	return name
}

// memoryUsage 运行时内存快照，仅诊断用途
func memoryUsage() map[string]string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return map[string]string{
		"alloc_bytes": strconv.FormatUint(ms.Alloc, 10),
		"sys_bytes":   strconv.FormatUint(ms.Sys, 10),
		"num_gc":      strconv.FormatUint(uint64(ms.NumGC), 10),
	}
}

// sampleRecords /test 接口使用的示例数据
func sampleRecords() []any {
	return []any{
		map[string]any{
			"id":    json.Number("1"),
			"name":  "John Doe",
			"email": "john@example.com",
			"age":   json.Number("30"),
			"city":  "Jakarta",
		},
		map[string]any{
			"id":    json.Number("2"),
			"name":  "Jane Smith",
			"email": "jane@example.com",
			"age":   json.Number("25"),
			"city":  "Surabaya",
		},
	}
}
