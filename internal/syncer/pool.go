package syncer

import (
	"context"
	"fmt"

	"github.com/blues/bts/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// Pool 前台同步协程池。博主提交链接后的首次同步走这里异步执行，
// 请求立即返回，不等待外部抓取。固定大小的池避免高峰期协程无限增长。
type Pool struct {
	engine *Engine
	pool   *ants.Pool
}

// NewPool 创建前台同步协程池
func NewPool(size int, engine *Engine) (*Pool, error) {
	if size <= 0 {
		size = 8
	}
	p, err := ants.NewPool(size, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("创建同步协程池失败: %w", err)
	}
	return &Pool{engine: engine, pool: p}, nil
}

// Dispatch 提交一次异步同步。池满时 Submit 阻塞而不是丢任务。
func (p *Pool) Dispatch(assignmentID uint) {
	err := p.pool.Submit(func() {
		if err := p.engine.SyncOnce(context.Background(), assignmentID); err != nil {
			// 失败已经落在分配状态里，这里只留痕
			logger.Info("Foreground sync for assignment %d degraded: %v", assignmentID, err)
		}
	})
	if err != nil {
		logger.Error("Failed to dispatch sync for assignment %d: %v", assignmentID, err)
	}
}

// Release 释放协程池
func (p *Pool) Release() {
	p.pool.Release()
}
