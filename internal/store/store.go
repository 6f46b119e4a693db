package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Name 逻辑集合名，同时也是各后端的存储键
type Name string

const (
	Users    Name = "users"
	Patients Name = "patients"
	Doctors  Name = "doctors"
	Reports  Name = "reports"
)

// All 启动时需要确保存在的集合
var All = []Name{Users, Patients, Doctors, Reports}

var ErrNotExist = errors.New("store: collection does not exist")

// Backend 整集合读写；不存在时 Read 返回 ErrNotExist
type Backend interface {
	Read(ctx context.Context, name Name) ([]byte, error)
	Write(ctx context.Context, name Name, data []byte) error
}

type Store struct {
	backend Backend
	log     *zap.Logger

	mu         sync.Mutex
	locks      map[Name]*semaphore.Weighted
	unreadable map[Name]struct{} // 最近一次 Load 读取或解码失败的集合，Save 拒绝覆盖
}

func New(b Backend, l *zap.Logger) *Store {
	if l == nil {
		l = zap.NewNop()
	}
	return &Store{
		backend:    b,
		log:        l,
		locks:      make(map[Name]*semaphore.Weighted),
		unreadable: make(map[Name]struct{}),
	}
}

// Init 把缺失的集合初始化成 []
func (s *Store) Init(ctx context.Context, names ...Name) error {
	for _, n := range names {
		_, err := s.backend.Read(ctx, n)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotExist) {
			// 读不出来的留给 Load 去 fail-soft，这里不覆盖
			s.log.Warn("collection unreadable at init", zap.String("collection", string(n)), zap.Error(err))
			continue
		}
		if err := s.backend.Write(ctx, n, []byte("[]")); err != nil {
			return fmt.Errorf("init collection %s: %w", n, err)
		}
		s.log.Info("collection created", zap.String("collection", string(n)))
	}
	return nil
}

// Load reads the whole collection. A missing collection is persisted as empty
// first. Read or decode failures are logged and reported as an empty
// collection, so callers cannot tell "empty" from "unreadable". Such a
// collection is not overwritten by Save until a later Load succeeds.
func Load[T any](ctx context.Context, s *Store, name Name) []T {
	start := time.Now()
	data, err := s.backend.Read(ctx, name)
	if errors.Is(err, ErrNotExist) {
		observe(name, "load", "created", start)
		s.markReadable(name, true)
		if werr := s.backend.Write(ctx, name, []byte("[]")); werr != nil {
			s.log.Error("init collection failed", zap.String("collection", string(name)), zap.Error(werr))
		}
		return []T{}
	}
	if err != nil {
		observe(name, "load", "error", start)
		s.markReadable(name, false)
		s.log.Error("read collection failed", zap.String("collection", string(name)), zap.Error(err))
		return []T{}
	}
	out := []T{}
	if err := json.Unmarshal(data, &out); err != nil {
		observe(name, "load", "error", start)
		s.markReadable(name, false)
		s.log.Error("decode collection failed", zap.String("collection", string(name)), zap.Error(err))
		return []T{}
	}
	if out == nil { // 文件内容是 null
		out = []T{}
	}
	observe(name, "load", "ok", start)
	s.markReadable(name, true)
	return out
}

// Save 整集合覆盖写；失败返回 false，由调用方决定怎么报错
func Save[T any](ctx context.Context, s *Store, name Name, records []T) bool {
	start := time.Now()
	if !s.readable(name) {
		observe(name, "save", "refused", start)
		s.log.Error("refusing to overwrite unreadable collection", zap.String("collection", string(name)))
		return false
	}
	if records == nil {
		records = []T{}
	}
	data, err := encode(records)
	if err != nil {
		observe(name, "save", "error", start)
		s.log.Error("encode collection failed", zap.String("collection", string(name)), zap.Error(err))
		return false
	}
	if err := s.backend.Write(ctx, name, data); err != nil {
		observe(name, "save", "error", start)
		s.log.Error("write collection failed", zap.String("collection", string(name)), zap.Error(err))
		return false
	}
	observe(name, "save", "ok", start)
	return true
}

func (s *Store) markReadable(n Name, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		delete(s.unreadable, n)
	} else {
		s.unreadable[n] = struct{}{}
	}
}

func (s *Store) readable(n Name) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, bad := s.unreadable[n]
	return !bad
}

// encode 两空格缩进，方便人工查看数据文件
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Lock 获取若干集合的单写者区间，按名字排序加锁避免死锁。
// 返回的 unlock 必须调用。
func (s *Store) Lock(ctx context.Context, names ...Name) (func(), error) {
	ordered := append([]Name(nil), names...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	ordered = dedupe(ordered)

	held := make([]*semaphore.Weighted, 0, len(ordered))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Release(1)
		}
	}
	for _, n := range ordered {
		sem := s.sem(n)
		if err := sem.Acquire(ctx, 1); err != nil {
			release()
			return nil, fmt.Errorf("lock collection %s: %w", n, err)
		}
		held = append(held, sem)
	}
	return release, nil
}

func (s *Store) sem(n Name) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	sem, ok := s.locks[n]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.locks[n] = sem
	}
	return sem
}

func dedupe(sorted []Name) []Name {
	out := make([]Name, 0, len(sorted))
	for _, n := range sorted {
		if len(out) > 0 && out[len(out)-1] == n {
			continue
		}
		out = append(out, n)
	}
	return out
}
