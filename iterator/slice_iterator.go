package iterator

import "github.com/opdss/excelsvc/contracts/iterator"

var _ iterator.Iterator[any] = (*SliceIterator[any])(nil)

// SliceIterator 数组数据迭代器
type SliceIterator[T any] struct {
	index int
	size  int
	data  []T
}

func NewSliceIterator[T any](data []T) *SliceIterator[T] {
	return &SliceIterator[T]{
		data:  data,
		index: 0,
		size:  len(data),
	}
}

func (it *SliceIterator[T]) Next() bool {
	return it.index < it.size
}

func (it *SliceIterator[T]) Value() T {
	defer func() {
		it.index++
	}()
	if it.index < it.size {
		return it.data[it.index]
	}
	var v T
	return v
}
