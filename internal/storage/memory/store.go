package memory

import (
	"github.com/yndnr/respkv/internal/core/command"
)

// Store maps keys to values. It is not safe for concurrent use.
type Store struct {
	data map[string][]byte
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Execute applies cmd and returns its reply.
func (s *Store) Execute(cmd command.Command) command.Reply {
	switch c := cmd.(type) {
	case command.Ping:
		return command.Pong{}
	case command.Set:
		s.set(c.Key, c.Value)
		return command.OK{}
	case command.Get:
		return s.get(c.Key)
	case command.Raw:
		return command.UnknownCommand(c)
	default:
		return command.Errorf("%s: unknown command: %T", command.ErrorPrefix, cmd)
	}
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return len(s.data)
}

func (s *Store) set(key string, value []byte) {
	// Copy so the caller cannot mutate stored bytes.
	s.data[key] = append([]byte{}, value...)
}

func (s *Store) get(key string) command.BulkReply {
	v, ok := s.data[key]
	if !ok {
		return command.NullBulk()
	}
	return command.Bulk(v)
}
