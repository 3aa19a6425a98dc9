package export

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/zeebo/errs"
)

var Error = errs.Class("export")

var ErrMaximumLimit = errors.New("export quantity exceeds maximum limit")

// DefaultSheetName 默认工作表名
const DefaultSheetName = "Sheet1"

// BatchSize 数据行分批写入的批大小，每批先整体物化再写出，
// 峰值内存与批大小成正比而与总记录数无关
const BatchSize = 1000

// ProgressEvery 进度回调触发间隔（行数），纯诊断用途
const ProgressEvery = 10000

// MaxRows 最大导出数据量，防止数据源出错无限导出
const MaxRows = 1000000

// ExcelSuffix CsvSuffix 导出文件后缀
const ExcelSuffix = "xlsx"
const CsvSuffix = "csv"

// ExcelContentType CsvContentType 导出文件的MIME类型
const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
const CsvContentType = "text/csv"

// ToExcelBytes 把解码后的JSON记录导出为xlsx字节的快捷方法
// 表头按 ResolveHeaders 规则确定，整个工作簿在内存中序列化
func ToExcelBytes(ctx context.Context, records []any, opt ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := ToExcelStream(ctx, records, &buf, opt...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToExcelStream 导出excel到io.Writer的快捷方法
func ToExcelStream(ctx context.Context, records []any, w io.Writer, opt ...Option) (int64, error) {
	o := newOptions(opt...)
	return NewExcel(ResolveHeaders(records, o.headers), NewSliceDataProvider(records), opt...).ExportTo(ctx, w)
}

// ToCsvBytes 把解码后的JSON记录导出为csv字节的快捷方法
func ToCsvBytes(ctx context.Context, records []any, opt ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := ToCsvStream(ctx, records, &buf, opt...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToCsvStream 导出csv到io.Writer的快捷方法
func ToCsvStream(ctx context.Context, records []any, w io.Writer, opt ...Option) (int64, error) {
	o := newOptions(opt...)
	return NewCsv(ResolveHeaders(records, o.headers), NewSliceDataProvider(records), opt...).ExportTo(ctx, w)
}
