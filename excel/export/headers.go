package export

import (
	"sort"

	"golang.org/x/exp/maps"
)

// FallbackField 首条记录不是对象或数据为空时使用的兜底列名
const FallbackField = "data"

// DefaultColWidth 默认列宽
const DefaultColWidth = 15

// NewHeaders 根据字段名生成表头，列名与字段名相同
func NewHeaders(fields []string) Headers {
	hs := make(Headers, len(fields))
	for i, f := range fields {
		hs[i] = Header{Field: f, Title: f, ColWidth: DefaultColWidth}
	}
	return hs
}

// ResolveHeaders 确定导出列集合
// 调用方显式传入表头时原样返回，顺序与重复项都由调用方负责；
// 否则取首条记录的键并按字节序排序保证可复现；首条记录不是对象
// 或数据为空时退化为单列"data"。只检查首条记录，后续记录的形状
// 不影响列集合：缺失的键写成空单元格，多出的键直接丢弃。
func ResolveHeaders(records []any, explicit []string) Headers {
	if len(explicit) > 0 {
		return NewHeaders(explicit)
	}
	if len(records) > 0 {
		if m, ok := records[0].(map[string]any); ok {
			keys := maps.Keys(m)
			sort.Strings(keys)
			return NewHeaders(keys)
		}
	}
	return NewHeaders([]string{FallbackField})
}

type columns struct {
	headers       Headers               //导出表配置
	fields        []string              //导出字段名
	titles        []string              //导出列名
	nums          int                   //列数量
	columnRenders map[string]CellRender //列字段渲染函数映射
}

func newColumns(headers Headers) *columns {
	size := len(headers)
	c := &columns{
		headers:       headers,
		fields:        make([]string, size),
		titles:        make([]string, size),
		nums:          size,
		columnRenders: make(map[string]CellRender),
	}
	for i := 0; i < size; i++ {
		c.fields[i] = headers[i].Field
		c.titles[i] = headers[i].Title
		if headers[i].CellRender != nil {
			c.columnRenders[headers[i].Field] = headers[i].CellRender
		}
	}
	return c
}

// materializeRow 把一条记录按表头顺序物化成定长单元格序列
// 结果长度恒等于列数：缺失键与显式null同样得到空单元格，
// 表头之外的键直接丢弃，非对象记录整行为空
func (c *columns) materializeRow(record any, row int, numeric bool) []Cell {
	cells := make([]Cell, c.nums)
	m, _ := record.(map[string]any)
	for i, field := range c.fields {
		var v any
		if m != nil {
			v = m[field]
		}
		if r := c.columnRenders[field]; r != nil {
			v = r(record, v, row, i+1)
		}
		if numeric {
			cells[i] = CoerceNumeric(v)
		} else {
			cells[i] = Coerce(v)
		}
	}
	return cells
}
