package export

type Option func(opt *options)

// WithMaxRows 最大数据行数，超过会报异常
func WithMaxRows(n int) Option {
	return func(opt *options) {
		if n > 0 && n < MaxRows {
			opt.maxRows = n
		}
	}
}

// WithSheetName 设置工作表名，缺省 Sheet1
func WithSheetName(name string) Option {
	return func(opt *options) {
		if name != "" {
			opt.sheetName = name
		}
	}
}

// WithHeaders 显式指定表头字段，覆盖首条记录的自动探测
func WithHeaders(fields []string) Option {
	return func(opt *options) {
		opt.headers = fields
	}
}

// WithNumericCells 启用数字检测：能精确通过int64/float64解析的数字
// 写成原生数字单元格，默认则把数字写成原始十进制文本
func WithNumericCells() Option {
	return func(opt *options) {
		opt.numericCells = true
	}
}

// WithProgress 注入进度观察回调，约每 ProgressEvery 行以及导出结束时
// 各触发一次，纯诊断用途，不影响导出行为
func WithProgress(fn func(rows int)) Option {
	return func(opt *options) {
		opt.progress = fn
	}
}

type options struct {
	maxRows      int            //导出最大数量，避免数据源出错无限导出
	sheetName    string         //工作表名
	headers      []string       //显式表头，为空时自动探测
	numericCells bool           //是否启用数字单元格检测
	progress     func(rows int) //进度回调
}

func newOptions(opts ...Option) *options {
	o := &options{
		maxRows:   MaxRows,
		sheetName: DefaultSheetName,
	}
	for i := range opts {
		opts[i](o)
	}
	return o
}
