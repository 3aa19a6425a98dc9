package api

// Response 错误与通用响应信封
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ExportRequest 导出请求体
type ExportRequest struct {
	Data    []any         `json:"data"`
	Options ExportOptions `json:"options"`
}

// ExportOptions 导出选项
// filename只影响Content-Disposition提示，不影响表内容
type ExportOptions struct {
	Filename  string   `json:"filename"`
	SheetName string   `json:"sheetName"`
	Headers   []string `json:"headers"`
}
