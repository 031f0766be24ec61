// Package state хранит состояние интерфейса: выбранного пользователя,
// активный экран и страницу. Выбранный пользователь может дублироваться
// во внешнее хранилище и восстанавливаться при старте.
package state

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/yayayum/internal/lib/sl"
	"github.com/magabrotheeeer/yayayum/internal/lib/validate"
	"github.com/magabrotheeeer/yayayum/internal/models"
)

// SelectedUserKey ключ выбранного пользователя в хранилище.
const SelectedUserKey = "selectedUser"

// Cache описывает хранилище для выбранного пользователя.
type Cache interface {
	// Get пытается получить значение из хранилища по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение с временем жизни, 0 означает без срока.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение по ключу.
	Invalidate(key string) error
}

// Snapshot неизменяемый снимок состояния.
type Snapshot struct {
	SelectedUser *models.User
	Screen       Screen
	Page         Page
}

// Listener получает снимок после каждого изменения.
type Listener func(Snapshot)

// Store потокобезопасное хранилище состояния с подписчиками.
type Store struct {
	mu        sync.Mutex
	snap      Snapshot
	listeners map[int]Listener
	order     []int
	nextID    int

	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// Option настраивает Store.
type Option func(*Store)

// WithPersistence включает сохранение выбранного пользователя в cache.
func WithPersistence(cache Cache) Option {
	return func(s *Store) {
		s.cache = cache
	}
}

// WithTTL задаёт время жизни сохранённого пользователя.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithInitial задаёт начальные экран и страницу.
func WithInitial(screen Screen, page Page) Option {
	return func(s *Store) {
		s.snap.Screen = screen
		s.snap.Page = page
	}
}

// New создаёт хранилище. Если задано внешнее хранилище, выбранный пользователь
// восстанавливается из него; повреждённые данные считаются отсутствующими.
func New(log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		snap: Snapshot{
			Screen: ScreenUserSelection,
			Page:   PageMain,
		},
		listeners: make(map[int]Listener),
		log:       sl.OrDiscard(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snap.SelectedUser = s.restore()
	return s
}

func (s *Store) restore() *models.User {
	const op = "state.restore"
	if s.cache == nil {
		return nil
	}

	var u models.User
	found, err := s.cache.Get(SelectedUserKey, &u)
	if err != nil {
		s.log.Warn("persisted user is unreadable, ignoring", sl.Op(op), sl.Err(err))
		return nil
	}
	if !found {
		return nil
	}
	if err := validate.Struct(u); err != nil {
		s.log.Warn("persisted user has invalid shape, ignoring", sl.Op(op), sl.Err(err))
		return nil
	}
	return &u
}

// Snapshot возвращает текущий снимок.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Subscribe регистрирует fn и сразу вызывает её с текущим снимком.
// Возвращает функцию отписки.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	snap := s.snap.clone()
	s.mu.Unlock()

	fn(snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Update применяет fn к текущему снимку и уведомляет подписчиков.
// Изменение выбранного пользователя сохраняется во внешнее хранилище.
func (s *Store) Update(fn func(Snapshot) Snapshot) {
	s.update(fn, false)
}

// update при forcePersist пишет пользователя в хранилище, даже если он не изменился.
func (s *Store) update(fn func(Snapshot) Snapshot, forcePersist bool) {
	s.mu.Lock()
	prev := s.snap.clone()
	next := fn(prev.clone()).clone()
	s.snap = next
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	if forcePersist || !sameUser(prev.SelectedUser, next.SelectedUser) {
		s.persist(next.SelectedUser)
	}
	for _, l := range listeners {
		l(next.clone())
	}
}

// SelectUser выбирает пользователя; nil снимает выбор и всегда очищает
// хранилище, в том числе отброшенную при старте или записанную другим процессом запись.
func (s *Store) SelectUser(u *models.User) {
	s.update(func(snap Snapshot) Snapshot {
		snap.SelectedUser = u
		return snap
	}, u == nil)
}

// SetScreen переключает экран.
func (s *Store) SetScreen(screen Screen) error {
	if !screen.Valid() {
		return fmt.Errorf("state.SetScreen: unknown screen %q", screen)
	}
	s.Update(func(snap Snapshot) Snapshot {
		snap.Screen = screen
		return snap
	})
	return nil
}

// SetPage переключает страницу.
func (s *Store) SetPage(page Page) error {
	if !page.Valid() {
		return fmt.Errorf("state.SetPage: unknown page %q", page)
	}
	s.Update(func(snap Snapshot) Snapshot {
		snap.Page = page
		return snap
	})
	return nil
}

// persist дублирует пользователя во внешнее хранилище. Ошибки только логируются.
func (s *Store) persist(u *models.User) {
	const op = "state.persist"
	if s.cache == nil {
		return
	}

	var err error
	if u == nil {
		err = s.cache.Invalidate(SelectedUserKey)
	} else {
		err = s.cache.Set(SelectedUserKey, u, s.ttl)
	}
	if err != nil {
		s.log.Warn("failed to persist selected user", sl.Op(op), sl.Err(err))
	}
}

func (snap Snapshot) clone() Snapshot {
	if snap.SelectedUser != nil {
		u := *snap.SelectedUser
		snap.SelectedUser = &u
	}
	return snap
}

func sameUser(a, b *models.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
