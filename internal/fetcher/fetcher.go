package fetcher

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Snapshot 一次抓取得到的互动数据
type Snapshot struct {
	Likes     int `json:"likes"`
	Favorites int `json:"favorites"`
	Shares    int `json:"shares"`
	Views     int `json:"views"`
}

// Fetcher 外部互动数据抓取接口。抓取失败是常态而不是异常，
// 调用方必须把失败当作正常分支处理（降级到手工填报）。
type Fetcher interface {
	Fetch(ctx context.Context, postURL string) (Snapshot, error)
}

var (
	// ErrInvalidPostURL 链接不是 http(s) 地址
	ErrInvalidPostURL = errors.New("无效的作品链接")
	// ErrFetchFailed 平台侧抓取失败，需要手工填报兜底
	ErrFetchFailed = errors.New("自动抓取互动数据失败")
)

// Simulated 模拟的平台数据源。真实的平台 API 客户端按同样的契约接入：
// 先校验链接，再接受一定比例的抓取失败。
type Simulated struct {
	failRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated 创建模拟数据源，failRate 为抓取失败概率
func NewSimulated(failRate float64) *Simulated {
	return &Simulated{
		failRate: failRate,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Fetch 抓取一次互动数据
func (f *Simulated) Fetch(_ context.Context, postURL string) (Snapshot, error) {
	if !strings.HasPrefix(postURL, "http://") && !strings.HasPrefix(postURL, "https://") {
		return Snapshot{}, ErrInvalidPostURL
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// 模拟平台接口的不稳定：部分链接需要走手工填报
	if f.rng.Float64() < f.failRate {
		return Snapshot{}, ErrFetchFailed
	}

	return Snapshot{
		Likes:     50 + f.rng.Intn(1451),
		Favorites: 10 + f.rng.Intn(691),
		Shares:    5 + f.rng.Intn(296),
		Views:     500 + f.rng.Intn(49501),
	}, nil
}
