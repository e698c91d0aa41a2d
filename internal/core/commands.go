package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vskvj3/playbook/internal/utils"
)

// RequestLogger records successful write requests so they can be replayed.
type RequestLogger interface {
	LogRequest(req map[string]interface{}) error
}

// RequestLoader returns previously logged write requests in order.
type RequestLoader interface {
	LoadRequests() ([]map[string]interface{}, error)
}

// CommandHandler runs requests one at a time so the order of the
// persistence log matches the order in which writes were applied.
type CommandHandler struct {
	Database    *Database
	Persistence RequestLogger

	mu sync.Mutex
}

// Create a new CommandHandler instance. With persistence set, keys removed
// by expiry are logged as DEL so replay does not bring them back.
func NewCommandHandler(db *Database, persistence RequestLogger) *CommandHandler {
	h := &CommandHandler{Database: db, Persistence: persistence}
	if db != nil && persistence != nil {
		db.SetEvictHook(h.logEviction)
	}
	return h
}

var writeCommands = map[string]bool{
	"DEL":      true,
	"EXPIRE":   true,
	"EXPIREAT": true,
	"SHRINK":   true,
	"CLEAR":    true,
	"PUSH":     true,
	"POP":      true,
	"SET":      true,
	"INSERT":   true,
	"REMOVEAT": true,
	"ENQUEUE":  true,
	"DEQUEUE":  true,
	"LPUSH":    true,
	"RPUSH":    true,
	"LPOP":     true,
	"RPOP":     true,
	"LINSERT":  true,
	"LREM":     true,
}

// IsWriteCommand reports whether command mutates the database.
func IsWriteCommand(command string) bool {
	return writeCommands[command]
}

// HandleCommand executes one request and returns the reply. Successful write
// requests are appended to the persistence log.
func (h *CommandHandler) HandleCommand(request map[string]interface{}) (map[string]interface{}, error) {
	req, err := DecodeRequest(request)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	response, err := h.execute(req)
	if err != nil {
		return nil, err
	}

	if IsWriteCommand(req.Command) {
		h.logRequest(req.ToMap())
	}
	return response, nil
}

func (h *CommandHandler) logRequest(request map[string]interface{}) {
	if h.Persistence == nil {
		return
	}
	if err := h.Persistence.LogRequest(request); err != nil {
		utils.GetLogger().Error("Request logging to disk failed: " + err.Error())
	}
}

func (h *CommandHandler) logEviction(key string) {
	h.logRequest(map[string]interface{}{"command": "DEL", "key": key})
}

// StartCleanup sweeps expired keys every interval until ctx is done.
func (h *CommandHandler) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.removeExpired()
			}
		}
	}()
}

func (h *CommandHandler) removeExpired() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Database.RemoveExpired()
}

// Replay re-applies logged requests without logging them again. Expiry is
// paused while it runs; keys whose deadline passed while the server was down
// are removed by the next sweep. Requests that fail are skipped; the number
// applied is returned.
func (h *CommandHandler) Replay(loader RequestLoader) (int, error) {
	logger := utils.GetLogger()
	requests, err := loader.LoadRequests()

	h.mu.Lock()
	defer h.mu.Unlock()
	resume := h.Database.PauseExpiry()
	defer resume()

	applied := 0
	for _, request := range requests {
		req, decodeErr := DecodeRequest(request)
		if decodeErr != nil {
			logger.Warn("Skipping malformed logged request: " + decodeErr.Error())
			continue
		}
		if _, execErr := h.execute(req); execErr != nil {
			logger.Warnf("Error applying %s during replay: %v", req.Command, execErr)
			continue
		}
		applied++
	}
	return applied, err
}

func ok() map[string]interface{} {
	return map[string]interface{}{"status": "OK"}
}

func okValue(value interface{}) map[string]interface{} {
	return map[string]interface{}{"status": "OK", "value": value}
}

// ErrorResponse builds the ERROR reply for err.
func ErrorResponse(err error) map[string]interface{} {
	return map[string]interface{}{"status": "ERROR", "kind": ErrorKind(err), "message": err.Error()}
}

func (h *CommandHandler) execute(req *Request) (map[string]interface{}, error) {
	db := h.Database

	switch req.Command {
	case "PING":
		return map[string]interface{}{"status": "OK", "message": "PONG"}, nil

	case "ECHO":
		if req.Message == nil {
			return nil, fmt.Errorf("%w: ECHO requires a 'message' field", ErrMissingField)
		}
		return map[string]interface{}{"status": "OK", "message": *req.Message}, nil

	case "KEYS":
		return okValue(db.Keys()), nil

	case "TYPE":
		return keyed(req, func() (interface{}, error) {
			kind, err := db.Type(req.Key)
			return string(kind), err
		})

	case "DEL":
		if err := req.requireKey(); err != nil {
			return nil, err
		}
		removed := 0
		if db.Del(req.Key) {
			removed = 1
		}
		return okValue(removed), nil

	case "EXPIRE":
		if err := req.requireKey(); err != nil {
			return nil, err
		}
		if req.Exp == nil {
			return nil, fmt.Errorf("%w: EXPIRE requires an 'exp' field (milliseconds)", ErrMissingField)
		}
		deadline, err := db.Expire(req.Key, *req.Exp)
		if err != nil {
			return nil, err
		}
		// Logged as EXPIREAT so replay keeps the same deadline.
		req.Command, req.Exp, req.At = "EXPIREAT", nil, &deadline
		return ok(), nil

	case "EXPIREAT":
		if err := req.requireKey(); err != nil {
			return nil, err
		}
		if req.At == nil {
			return nil, fmt.Errorf("%w: EXPIREAT requires an 'at' field (unix milliseconds)", ErrMissingField)
		}
		return done(db.ExpireAt(req.Key, *req.At))

	case "LEN":
		return keyed(req, func() (interface{}, error) { return db.Len(req.Key) })

	case "CAP":
		return keyed(req, func() (interface{}, error) { return db.Cap(req.Key) })

	case "RANGE":
		return keyed(req, func() (interface{}, error) { return db.Range(req.Key) })

	case "SHRINK":
		if err := req.requireKey(); err != nil {
			return nil, err
		}
		return done(db.Shrink(req.Key))

	case "CLEAR":
		if err := req.requireKey(); err != nil {
			return nil, err
		}
		return done(db.Clear(req.Key))

	// Array
	case "PUSH":
		v, err := req.requireValue()
		if err != nil {
			return nil, err
		}
		return done(db.Push(req.Key, v))

	case "POP":
		return keyed(req, func() (interface{}, error) { return db.Pop(req.Key) })

	case "PEEK":
		return keyed(req, func() (interface{}, error) { return db.Peek(req.Key) })

	case "GET":
		index, err := req.requireIndex()
		if err != nil {
			return nil, err
		}
		return value(db.Get(req.Key, index))

	case "SET":
		index, err := req.requireIndex()
		if err != nil {
			return nil, err
		}
		v, err := req.requireValue()
		if err != nil {
			return nil, err
		}
		return done(db.Set(req.Key, index, v))

	case "INSERT":
		index, err := req.requireIndex()
		if err != nil {
			return nil, err
		}
		v, err := req.requireValue()
		if err != nil {
			return nil, err
		}
		return done(db.Insert(req.Key, index, v))

	case "REMOVEAT":
		index, err := req.requireIndex()
		if err != nil {
			return nil, err
		}
		return value(db.RemoveAt(req.Key, index))

	// Queue
	case "ENQUEUE":
		v, err := req.requireValue()
		if err != nil {
			return nil, err
		}
		return done(db.Enqueue(req.Key, v))

	case "DEQUEUE":
		return keyed(req, func() (interface{}, error) { return db.Dequeue(req.Key) })

	case "FRONT":
		return keyed(req, func() (interface{}, error) { return db.Front(req.Key) })

	// Linked list
	case "LPUSH":
		v, err := req.requireValue()
		if err != nil {
			return nil, err
		}
		return done(db.LPush(req.Key, v))

	case "RPUSH":
		v, err := req.requireValue()
		if err != nil {
			return nil, err
		}
		return done(db.RPush(req.Key, v))

	case "LPOP":
		return keyed(req, func() (interface{}, error) { return db.LPop(req.Key) })

	case "RPOP":
		return keyed(req, func() (interface{}, error) { return db.RPop(req.Key) })

	case "LINSERT":
		index, err := req.requireIndex()
		if err != nil {
			return nil, err
		}
		before, err := req.requireBefore()
		if err != nil {
			return nil, err
		}
		v, err := req.requireValue()
		if err != nil {
			return nil, err
		}
		return done(db.LInsert(req.Key, index, before, v))

	case "LREM":
		index, err := req.requireIndex()
		if err != nil {
			return nil, err
		}
		return value(db.LRem(req.Key, index))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, req.Command)
	}
}

// keyed checks the key field, then runs fn and wraps its result.
func keyed(req *Request, fn func() (interface{}, error)) (map[string]interface{}, error) {
	if err := req.requireKey(); err != nil {
		return nil, err
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	return okValue(v), nil
}

func value(v string, err error) (map[string]interface{}, error) {
	if err != nil {
		return nil, err
	}
	return okValue(v), nil
}

func done(err error) (map[string]interface{}, error) {
	if err != nil {
		return nil, err
	}
	return ok(), nil
}
