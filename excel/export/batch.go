package export

import "context"

// forEachBatch 分批消费数据提供者
// 每批先完整物化成单元格矩阵再交给write顺序写出，写完即释放，
// 峰值内存约为 batchSize*列数 而与总记录数无关。write收到的
// startRow是本批首条记录在全部数据中的下标（0起）。批大小不改变
// 写出的(行,列,单元格)序列。超过maxRows返回 ErrMaximumLimit，
// 批次边界响应ctx取消。
func forEachBatch(ctx context.Context, dp DataProvider, c *columns, o *options, batchSize int, write func(rows [][]Cell, startRow int) error) error {
	var total, lastReport, startRow int
	batch := make([][]Cell, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := write(batch, startRow); err != nil {
			return err
		}
		startRow += len(batch)
		batch = batch[:0]
		return nil
	}
	for dp.Next() {
		total++
		if total > o.maxRows {
			return ErrMaximumLimit
		}
		batch = append(batch, c.materializeRow(dp.Value(), total, o.numericCells))
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
			if o.progress != nil && total-lastReport >= ProgressEvery {
				o.progress(total)
				lastReport = total
			}
			select {
			case <-ctx.Done():
				return Error.Wrap(ctx.Err())
			default:
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	if o.progress != nil && total > lastReport {
		o.progress(total)
	}
	return nil
}
