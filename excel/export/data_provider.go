package export

import "github.com/opdss/excelsvc/contracts/iterator"

// DataProvider 数据提供者
type DataProvider iterator.Iterator[any]

// CellRender 单元格数据渲染，在类型收敛之前执行
// @rowData 整个行数据
// @val 获取到的单元格元数据
// @row 当前数据行数，从1开始
// @col 当前列数，从1开始
type CellRender func(rowData any, val any, row int, col int) any

// Header 表头
type Header struct {
	Field      string     //字段名
	Title      string     //列名
	CellRender CellRender //单元格数据处理
	ColWidth   float64    //列宽度,导出excel时支持,为0时使用默认宽度
}

// Headers 表头
type Headers []Header
