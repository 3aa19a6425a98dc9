package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"

	"github.com/opdss/excelsvc/contracts/excel"
)

var _ excel.Exporter = (*Csv)(nil)

// Csv JSON记录导出为csv，与xlsx导出共用表头解析、
// 类型收敛和批次编排，仅写出层不同
type Csv struct {
	dp      DataProvider
	options *options
	columns *columns
}

func NewCsv(h Headers, dp DataProvider, opts ...Option) *Csv {
	return &Csv{
		dp:      dp,
		columns: newColumns(h),
		options: newOptions(opts...),
	}
}

// ExportBytes 导出为内存字节
func (c *Csv) ExportBytes(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.ExportTo(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportTo 导出到io.Writer，返回写入的字节数
func (c *Csv) ExportTo(ctx context.Context, w io.Writer) (int64, error) {
	if c.columns.nums == 0 {
		return 0, Error.New("header is empty")
	}
	cw := &countingWriter{w: w}
	fw := csv.NewWriter(cw)
	if err := fw.Write(c.columns.titles); err != nil {
		return cw.n, Error.Wrap(err)
	}
	err := forEachBatch(ctx, c.dp, c.columns, c.options, BatchSize, func(rows [][]Cell, _ int) error {
		record := make([]string, c.columns.nums)
		for _, cells := range rows {
			for i := range cells {
				record[i] = cells[i].String()
			}
			if err := fw.Write(record); err != nil {
				return Error.Wrap(err)
			}
		}
		return nil
	})
	fw.Flush()
	if err == nil {
		err = Error.Wrap(fw.Error())
	}
	return cw.n, err
}

type countingWriter struct {
	n int64
	w io.Writer
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
