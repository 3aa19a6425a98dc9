package export

import (
	"bytes"
	"context"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/opdss/excelsvc/contracts/excel"
)

var _ excel.Exporter = (*Excel)(nil)

// rowWriter 批次编排对工作表写入器的唯一依赖，由excelize的流式写入器实现
type rowWriter interface {
	SetRow(cell string, values []any, opts ...excelize.RowOpts) error
}

// Excel JSON记录导出为xlsx
// 工作簿由单个导出过程独占，顺序追加写入，导出结束后整体序列化释放
type Excel struct {
	options *options
	columns *columns
	dp      DataProvider
}

func NewExcel(h Headers, dp DataProvider, opts ...Option) *Excel {
	return &Excel{
		dp:      dp,
		columns: newColumns(h),
		options: newOptions(opts...),
	}
}

// ExportBytes 导出为内存字节
func (e *Excel) ExportBytes(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.ExportTo(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportTo 导出到io.Writer，工作簿在内存中序列化，不落盘
func (e *Excel) ExportTo(ctx context.Context, w io.Writer) (int64, error) {
	fp := excelize.NewFile()
	defer func() {
		_ = fp.Close()
	}()
	if err := e.exportToExcelize(ctx, fp); err != nil {
		return 0, err
	}
	n, err := fp.WriteTo(w)
	return n, Error.Wrap(err)
}

// 执行导出
func (e *Excel) exportToExcelize(ctx context.Context, fp *excelize.File) error {
	if e.columns.nums == 0 {
		return Error.New("header is empty")
	}
	sheet := e.options.sheetName
	if sheet != DefaultSheetName {
		if err := fp.SetSheetName(DefaultSheetName, sheet); err != nil {
			return Error.Wrap(err)
		}
	}
	fw, err := fp.NewStreamWriter(sheet)
	if err != nil {
		return Error.Wrap(err)
	}
	//列宽必须在写入任何行之前设置
	if err = e.setColWidths(fw); err != nil {
		return err
	}
	if err = e.writeHeaderRow(fp, fw); err != nil {
		return err
	}
	if err = e.writeRows(ctx, fw, BatchSize); err != nil {
		return err
	}
	return Error.Wrap(fw.Flush())
}

func (e *Excel) setColWidths(fw *excelize.StreamWriter) error {
	for i, h := range e.columns.headers {
		w := h.ColWidth
		if w <= 0 {
			w = DefaultColWidth
		}
		if err := fw.SetColWidth(i+1, i+1, w); err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}

// writeHeaderRow 表头占第1行，加粗、灰底、细边框
func (e *Excel) writeHeaderRow(fp *excelize.File, fw *excelize.StreamWriter) error {
	styleID, err := fp.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return Error.Wrap(err)
	}
	values := make([]any, e.columns.nums)
	for i, title := range e.columns.titles {
		values[i] = excelize.Cell{StyleID: styleID, Value: title}
	}
	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return Error.Wrap(err)
	}
	return Error.Wrap(fw.SetRow(cell, values))
}

// writeRows 分批物化并写入数据行，第i条记录（0起）写在第i+2行
func (e *Excel) writeRows(ctx context.Context, fw rowWriter, batchSize int) error {
	return forEachBatch(ctx, e.dp, e.columns, e.options, batchSize, func(rows [][]Cell, startRow int) error {
		for i, cells := range rows {
			cell, err := excelize.CoordinatesToCellName(1, startRow+i+2)
			if err != nil {
				return Error.Wrap(err)
			}
			values := make([]any, len(cells))
			for j := range cells {
				values[j] = cells[j].Value()
			}
			if err = fw.SetRow(cell, values); err != nil {
				return Error.Wrap(err)
			}
		}
		return nil
	})
}
