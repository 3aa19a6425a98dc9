package export

import "github.com/opdss/excelsvc/iterator"

// SliceDataProvider 数组数据迭代器
type SliceDataProvider struct {
	*iterator.SliceIterator[any]
}

func NewSliceDataProvider(data []any) *SliceDataProvider {
	return &SliceDataProvider{SliceIterator: iterator.NewSliceIterator(data)}
}
