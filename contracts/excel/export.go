package excel

import (
	"context"
	"io"
)

// Exporter 导出接口
type Exporter interface {
	// ExportTo 导出到io.Writer，返回写入的字节数
	ExportTo(ctx context.Context, w io.Writer) (int64, error)
	// ExportBytes 导出为内存字节，整个文件缓冲完成后一次性返回
	ExportBytes(ctx context.Context) ([]byte, error)
}
