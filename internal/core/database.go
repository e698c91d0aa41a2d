package core

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	ds "github.com/vskvj3/playbook/internal/datastructures"
)

// Kind names the collection stored under a key.
type Kind string

const (
	KindArray  Kind = "array"
	KindQueue  Kind = "queue"
	KindLinked Kind = "linked"
)

type entry struct {
	kind      Kind
	array     *ds.ArrayStack[string]
	queue     *ds.CircularQueue[string]
	linked    *ds.LinkedList[string]
	expiresAt int64 // unix ms, 0 means no expiry
}

func (e *entry) len() int {
	switch e.kind {
	case KindArray:
		return e.array.Len()
	case KindQueue:
		return e.queue.Len()
	default:
		return e.linked.Len()
	}
}

func (e *entry) values() []string {
	switch e.kind {
	case KindArray:
		return e.array.Values()
	case KindQueue:
		return e.queue.Values()
	default:
		return e.linked.Values()
	}
}

// Database is the keyspace: each key holds one collection. The collections
// are not safe for concurrent use, so every access goes through mu.
type Database struct {
	mu       sync.Mutex
	store    map[string]*entry
	capacity int
	now      func() time.Time

	onEvict      func(key string) // called with mu held when an expired key is removed
	expiryPaused bool
}

// Create a new database instance. Collections created on first write get
// initialCapacity slots.
func NewDatabase(initialCapacity int) (*Database, error) {
	if initialCapacity <= 0 {
		return nil, fmt.Errorf("%w: initial capacity must be greater than 0, got %d", ds.ErrInvalidArgument, initialCapacity)
	}
	return &Database{
		store:    make(map[string]*entry),
		capacity: initialCapacity,
		now:      time.Now,
	}, nil
}

// SetEvictHook registers fn to be called whenever an expired key is removed.
// fn runs with the database locked and must not call back into it.
func (db *Database) SetEvictHook(fn func(key string)) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.onEvict = fn
}

// PauseExpiry stops keys from expiring until the returned function is
// called. Replay uses it so logged requests apply to the keys they were
// issued against.
func (db *Database) PauseExpiry() (resume func()) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.expiryPaused = true
	return func() {
		db.mu.Lock()
		defer db.mu.Unlock()
		db.expiryPaused = false
	}
}

func (db *Database) expired(e *entry, nowMs int64) bool {
	return !db.expiryPaused && e.expiresAt > 0 && nowMs >= e.expiresAt
}

// evict removes an expired key. Callers hold mu.
func (db *Database) evict(key string) {
	delete(db.store, key)
	if db.onEvict != nil {
		db.onEvict(key)
	}
}

// lookup returns the live entry for key. Callers hold mu.
func (db *Database) lookup(key string) (*entry, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key cannot be empty", ds.ErrInvalidArgument)
	}
	e, ok := db.store[key]
	if ok && db.expired(e, db.now().UnixMilli()) {
		db.evict(key)
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return e, nil
}

func (db *Database) lookupKind(key string, kind Kind) (*entry, error) {
	e, err := db.lookup(key)
	if err != nil {
		return nil, err
	}
	if e.kind != kind {
		return nil, fmt.Errorf("%w: %s holds %s, not %s", ErrWrongType, key, e.kind, kind)
	}
	return e, nil
}

// getOrCreate returns the collection under key, creating an empty one of the
// given kind if the key does not exist.
func (db *Database) getOrCreate(key string, kind Kind) (*entry, error) {
	e, err := db.lookupKind(key, kind)
	if err == nil || !isNotFound(err) {
		return e, err
	}

	e = &entry{kind: kind}
	switch kind {
	case KindArray:
		e.array, err = ds.NewArrayStack[string](db.capacity)
	case KindQueue:
		e.queue, err = ds.NewCircularQueue[string](db.capacity)
	case KindLinked:
		e.linked = ds.NewLinkedList[string]()
	}
	if err != nil {
		return nil, err
	}
	db.store[key] = e
	return e, nil
}

/***************************************************************
*                       Array (stack/list)                     *
***************************************************************/

func (db *Database) Push(key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.getOrCreate(key, KindArray)
	if err != nil {
		return err
	}
	e.array.Push(value)
	return nil
}

func (db *Database) Pop(key string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindArray)
	if err != nil {
		return "", err
	}
	return e.array.Pop()
}

func (db *Database) Peek(key string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindArray)
	if err != nil {
		return "", err
	}
	return e.array.Peek()
}

func (db *Database) Get(key string, index int) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindArray)
	if err != nil {
		return "", err
	}
	return e.array.Get(index)
}

func (db *Database) Set(key string, index int, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindArray)
	if err != nil {
		return err
	}
	return e.array.Set(index, value)
}

// Insert creates the key when index is 0, matching InsertAt on an empty list.
func (db *Database) Insert(key string, index int, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindArray)
	if isNotFound(err) && index == 0 {
		e, err = db.getOrCreate(key, KindArray)
	}
	if err != nil {
		return err
	}
	return e.array.InsertAt(index, value)
}

func (db *Database) RemoveAt(key string, index int) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindArray)
	if err != nil {
		return "", err
	}
	value, err := e.array.Get(index)
	if err != nil {
		return "", err
	}
	return value, e.array.RemoveAt(index)
}

/***************************************************************
*                            Queue                             *
***************************************************************/

func (db *Database) Enqueue(key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.getOrCreate(key, KindQueue)
	if err != nil {
		return err
	}
	e.queue.Enqueue(value)
	return nil
}

func (db *Database) Dequeue(key string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindQueue)
	if err != nil {
		return "", err
	}
	return e.queue.Dequeue()
}

func (db *Database) Front(key string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindQueue)
	if err != nil {
		return "", err
	}
	return e.queue.PeekFront()
}

/***************************************************************
*                         Linked list                          *
***************************************************************/

func (db *Database) LPush(key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.getOrCreate(key, KindLinked)
	if err != nil {
		return err
	}
	return e.linked.AddFirst(ds.NewNode(value))
}

func (db *Database) RPush(key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.getOrCreate(key, KindLinked)
	if err != nil {
		return err
	}
	return e.linked.AddLast(ds.NewNode(value))
}

func (db *Database) LPop(key string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindLinked)
	if err != nil {
		return "", err
	}
	node, err := e.linked.RemoveFirst()
	if err != nil {
		return "", err
	}
	return node.Value(), nil
}

func (db *Database) RPop(key string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindLinked)
	if err != nil {
		return "", err
	}
	node, err := e.linked.RemoveLast()
	if err != nil {
		return "", err
	}
	return node.Value(), nil
}

// LInsert links value before or after the node at position index.
func (db *Database) LInsert(key string, index int, before bool, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindLinked)
	if err != nil {
		return err
	}
	pivot, err := e.linked.At(index)
	if err != nil {
		return err
	}
	if before {
		return e.linked.AddBefore(pivot, ds.NewNode(value))
	}
	return e.linked.AddAfter(pivot, ds.NewNode(value))
}

// LRem unlinks the node at position index and returns its value.
func (db *Database) LRem(key string, index int) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookupKind(key, KindLinked)
	if err != nil {
		return "", err
	}
	node, err := e.linked.At(index)
	if err != nil {
		return "", err
	}
	if err := e.linked.Remove(node); err != nil {
		return "", err
	}
	return node.Value(), nil
}

/***************************************************************
*                       Any collection                         *
***************************************************************/

func (db *Database) Len(key string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookup(key)
	if err != nil {
		return 0, err
	}
	return e.len(), nil
}

// Cap reports the allocated slots of an array or queue.
func (db *Database) Cap(key string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookup(key)
	if err != nil {
		return 0, err
	}
	switch e.kind {
	case KindArray:
		return e.array.Cap(), nil
	case KindQueue:
		return e.queue.Cap(), nil
	default:
		return 0, fmt.Errorf("%w: %s has no capacity", ErrWrongType, e.kind)
	}
}

// Shrink releases unused slots of an array or queue.
func (db *Database) Shrink(key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookup(key)
	if err != nil {
		return err
	}
	switch e.kind {
	case KindArray:
		e.array.ShrinkToFit()
	case KindQueue:
		e.queue.ShrinkToFit()
	default:
		return fmt.Errorf("%w: %s cannot be shrunk", ErrWrongType, e.kind)
	}
	return nil
}

// Range returns every element in logical order.
func (db *Database) Range(key string) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookup(key)
	if err != nil {
		return nil, err
	}
	return e.values(), nil
}

// Clear empties the collection but keeps the key and its kind.
func (db *Database) Clear(key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookup(key)
	if err != nil {
		return err
	}
	switch e.kind {
	case KindArray:
		e.array, err = ds.NewArrayStack[string](db.capacity)
	case KindQueue:
		e.queue, err = ds.NewCircularQueue[string](db.capacity)
	default:
		e.linked.Clear()
	}
	return err
}

func (db *Database) Type(key string) (Kind, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookup(key)
	if err != nil {
		return "", err
	}
	return e.kind, nil
}

// Del removes key and reports whether it existed.
func (db *Database) Del(key string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, err := db.lookup(key); err != nil {
		return false
	}
	delete(db.store, key)
	return true
}

// Keys returns the live keys in sorted order.
func (db *Database) Keys() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := db.now().UnixMilli()
	keys := make([]string, 0, len(db.store))
	for key, e := range db.store {
		if db.expired(e, now) {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Expire removes key after ttlMs milliseconds and returns the absolute
// deadline in unix ms. A non-positive ttl clears any pending expiry and
// returns 0.
func (db *Database) Expire(key string, ttlMs int64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookup(key)
	if err != nil {
		return 0, err
	}
	if ttlMs <= 0 {
		e.expiresAt = 0
		return 0, nil
	}
	now := db.now().UnixMilli()
	if ttlMs > math.MaxInt64-now {
		return 0, fmt.Errorf("%w: ttl %d ms is too large", ds.ErrInvalidArgument, ttlMs)
	}
	e.expiresAt = now + ttlMs
	return e.expiresAt, nil
}

// ExpireAt removes key once the unix ms time atMs is reached. A non-positive
// atMs clears any pending expiry.
func (db *Database) ExpireAt(key string, atMs int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, err := db.lookup(key)
	if err != nil {
		return err
	}
	e.expiresAt = max(atMs, 0)
	return nil
}

// RemoveExpired deletes every expired key and returns how many were removed.
func (db *Database) RemoveExpired() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := db.now().UnixMilli()
	removed := 0
	for key, e := range db.store {
		if db.expired(e, now) {
			db.evict(key)
			removed++
		}
	}
	return removed
}
