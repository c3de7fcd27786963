package headers

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/RecoveryAshes/crawlib/internal/utils"
)

// candidateNames 均匀随机候选集对应的浏览器名 (含别名)
var candidateNames = []string{
	"ie",
	"msie",
	"internet explorer",
	"opera",
	"chrome",
	"google",
	"google chrome",
	"firefox",
	"ff",
	"safari",
}

// WeightedAgent 带使用占比的User-Agent
type WeightedAgent struct {
	Agent string  `mapstructure:"agent" yaml:"agent"`
	Share float64 `mapstructure:"share" yaml:"share"`
}

// Provider 外部User-Agent数据源
type Provider interface {
	// Browser 返回指定浏览器 (或别名) 的User-Agent
	Browser(name string) (string, error)

	// Weighted 返回按真实使用占比加权的全部User-Agent
	Weighted() ([]WeightedAgent, error)
}

// randSource UserAgents使用的随机源,必须可并发调用
type randSource interface {
	IntN(n int) int
	Float64() float64
}

// globalRand math/rand/v2 的顶层函数,并发安全
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// lockedRand 带互斥锁的确定性随机源
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// Option UserAgents构造选项
type Option func(*UserAgents)

// WithSeed 使用固定种子,使随机结果可复现 (测试用)
func WithSeed(seed uint64) Option {
	return func(u *UserAgents) {
		u.rnd = &lockedRand{r: rand.New(rand.NewPCG(seed, seed))}
	}
}

// UserAgents User-Agent分组
// 构造时一次性从数据源解析全部取值,此后只读
type UserAgents struct {
	ie      string
	chrome  string
	firefox string
	safari  string

	// candidates 均匀随机候选集
	candidates []string

	// weighted 加权随机的取值及累计权重
	weighted   []string
	cumulative []float64

	rnd randSource
}

// NewUserAgents 从数据源创建User-Agent分组
// 任一查询失败都返回 *InitializationError
func NewUserAgents(p Provider, opts ...Option) (*UserAgents, error) {
	if p == nil {
		return nil, &InitializationError{Cause: fmt.Errorf("数据源为nil")}
	}

	u := &UserAgents{rnd: globalRand{}}
	for _, opt := range opts {
		opt(u)
	}

	// 具名字段都在候选集中,每个名称只查询一次
	lookups := make(map[string]string, len(candidateNames))
	u.candidates = make([]string, 0, len(candidateNames))
	for _, name := range candidateNames {
		agent, err := p.Browser(name)
		if err != nil {
			return nil, &InitializationError{Browser: name, Cause: err}
		}
		lookups[name] = agent
		u.candidates = append(u.candidates, agent)
	}
	u.ie = lookups["ie"]
	u.chrome = lookups["chrome"]
	u.firefox = lookups["firefox"]
	u.safari = lookups["safari"]

	weighted, err := p.Weighted()
	if err != nil {
		return nil, &InitializationError{Cause: err}
	}

	var total float64
	for _, w := range weighted {
		if w.Share <= 0 || w.Agent == "" {
			continue
		}
		total += w.Share
		u.weighted = append(u.weighted, w.Agent)
		u.cumulative = append(u.cumulative, total)
	}
	if len(u.weighted) == 0 {
		return nil, &InitializationError{Cause: fmt.Errorf("加权User-Agent列表为空")}
	}

	utils.Debugf("User-Agent分组初始化完成: 候选%d个, 加权%d个", len(u.candidates), len(u.weighted))
	return u, nil
}

// Key 返回HTTP头部名称
func (u *UserAgents) Key() string { return UserAgentKey }

// IE 返回Internet Explorer的User-Agent
func (u *UserAgents) IE() string { return u.ie }

// Chrome 返回Chrome的User-Agent
func (u *UserAgents) Chrome() string { return u.chrome }

// Firefox 返回Firefox的User-Agent
func (u *UserAgents) Firefox() string { return u.firefox }

// Safari 返回Safari的User-Agent
func (u *UserAgents) Safari() string { return u.safari }

// Candidates 返回均匀随机候选集的副本
func (u *UserAgents) Candidates() []string {
	out := make([]string, len(u.candidates))
	copy(out, u.candidates)
	return out
}

// Random 从固定候选集中均匀随机选取一个User-Agent
func (u *UserAgents) Random() string {
	return u.candidates[u.rnd.IntN(len(u.candidates))]
}

// RandomByStatistic 按真实使用占比加权随机选取一个User-Agent
func (u *UserAgents) RandomByStatistic() string {
	total := u.cumulative[len(u.cumulative)-1]
	target := u.rnd.Float64() * total
	i := sort.Search(len(u.cumulative), func(i int) bool {
		return u.cumulative[i] > target
	})
	if i >= len(u.weighted) {
		i = len(u.weighted) - 1
	}
	return u.weighted[i]
}
