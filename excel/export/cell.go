package export

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// CellKind 单元格类型标签
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
)

// ArrayPlaceholder ObjectPlaceholder 结构化值不展开，用固定占位符标记结构丢失
const (
	ArrayPlaceholder  = "[Array]"
	ObjectPlaceholder = "[Object]"
)

// Cell 单元格值，JSON值按类型标签收敛后的定型表示
// 行物化时逐格构造，写入工作表后即丢弃，不跨请求保留
type Cell struct {
	Kind  CellKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

func EmptyCell() Cell          { return Cell{Kind: KindEmpty} }
func StringCell(s string) Cell { return Cell{Kind: KindString, Str: s} }
func IntegerCell(i int64) Cell { return Cell{Kind: KindInteger, Int: i} }
func FloatCell(f float64) Cell { return Cell{Kind: KindFloat, Float: f} }
func BoolCell(b bool) Cell     { return Cell{Kind: KindBoolean, Bool: b} }

// Value 转成工作表写入原语可接受的原生值，空单元格为nil
func (c Cell) Value() any {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindInteger:
		return c.Int
	case KindFloat:
		return c.Float
	case KindBoolean:
		return c.Bool
	default:
		return nil
	}
}

// String csv等文本输出使用
func (c Cell) String() string {
	return cast.ToString(c.Value())
}

// Coerce 按JSON类型标签收敛单元格值，任何输入都有唯一归宿，不会出错
// null与缺失键同样为空；布尔保留原生类型；数字写成原始十进制文本，
// 大整数不会丢精度（请求体需用json.Number解码）；字符串原样；
// 数组与对象用占位符标记
func Coerce(v any) Cell {
	switch t := v.(type) {
	case nil:
		return EmptyCell()
	case bool:
		return BoolCell(t)
	case string:
		return StringCell(t)
	case json.Number:
		return StringCell(t.String())
	case []any:
		return StringCell(ArrayPlaceholder)
	case map[string]any:
		return StringCell(ObjectPlaceholder)
	default:
		//非json.Number解码路径出现的数字等其他标量
		return StringCell(cast.ToString(t))
	}
}

// CoerceNumeric 数字检测版的收敛：能精确通过int64或float64解析的
// 数字写成原生数字单元格，其余与 Coerce 相同。由 WithNumericCells
// 统一启用，自动探测表头与显式表头两条路径行为一致
func CoerceNumeric(v any) Cell {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return IntegerCell(i)
		}
		if f, err := t.Float64(); err == nil {
			return FloatCell(f)
		}
		return StringCell(t.String())
	case float64:
		return FloatCell(t)
	case int:
		return IntegerCell(int64(t))
	case int64:
		return IntegerCell(t)
	default:
		return Coerce(v)
	}
}
