package server

import (
	"errors"
	"strings"

	"github.com/phuslu/log"
	"github.com/tidwall/match"
	"github.com/tidwall/redcon"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/store"
)

// replyWriter is the part of a redcon connection commands reply through.
type replyWriter interface {
	WriteError(msg string)
	WriteString(str string)
	WriteBulk(bulk []byte)
	WriteBulkString(bulk string)
	WriteInt(num int)
	WriteArray(count int)
	WriteNull()
}

// RESPServer serves the store with the Redis serialization protocol. It understands a small subset of the Redis
// commands: PING, GET, SET, DEL, EXISTS, KEYS, DBSIZE and QUIT. Values are always set with the string encoding.
type RESPServer struct {
	kv     KV
	logger *log.Logger
	server *redcon.Server
}

// NewRESPServer creates a RESPServer listening on addr once ListenAndServe is called.
func NewRESPServer(addr string, kv KV, logger *log.Logger) *RESPServer {
	respServer := &RESPServer{
		kv:     kv,
		logger: logger,
	}
	respServer.server = redcon.NewServer(addr, respServer.handle, respServer.accept, respServer.closed)
	return respServer
}

// ListenAndServe accepts connections until Close is called. When ready is not nil, it receives nil once the server
// is listening, or the error which prevented listening.
func (s *RESPServer) ListenAndServe(ready chan error) error {
	return s.server.ListenServeAndSignal(ready)
}

// Close stops accepting connections and closes all open ones.
func (s *RESPServer) Close() error {
	return s.server.Close()
}

func (s *RESPServer) accept(conn redcon.Conn) bool {
	s.logger.Debug().Str("remote", conn.RemoteAddr()).Msg("accepted RESP connection")
	return true
}

func (s *RESPServer) closed(conn redcon.Conn, err error) {
	if err != nil {
		s.logger.Debug().Str("remote", conn.RemoteAddr()).Err(err).Msg("closed RESP connection")
	}
}

func (s *RESPServer) handle(conn redcon.Conn, cmd redcon.Command) {
	if !s.execute(conn, cmd.Args) {
		if err := conn.Close(); err != nil {
			s.logger.Warn().Str("remote", conn.RemoteAddr()).Err(err).Msg("closing RESP connection")
		}
	}
}

// execute runs a single command and writes the reply. It returns false when the connection is to be closed.
func (s *RESPServer) execute(w replyWriter, args [][]byte) bool {
	if len(args) == 0 {
		w.WriteError("ERR empty command")
		return true
	}

	name := strings.ToUpper(string(args[0]))
	switch name {
	case "PING":
		switch len(args) {
		case 1:
			w.WriteString("PONG")
		case 2:
			w.WriteBulk(args[1])
		default:
			writeArgumentCountError(w, name)
		}
	case "QUIT":
		w.WriteString("OK")
		return false
	case "GET":
		if len(args) != 2 {
			writeArgumentCountError(w, name)
			break
		}
		value, err := s.kv.Get(string(args[1]))
		if errors.Is(err, store.ErrNotFound) {
			w.WriteNull()
			break
		}
		if err != nil {
			s.writeError(w, err)
			break
		}
		w.WriteBulkString(value.String())
	case "SET":
		if len(args) != 3 {
			writeArgumentCountError(w, name)
			break
		}
		if err := s.kv.Set(string(args[1]), encoding.Value{
			Encoding: encoding.EncodingString,
			Bytes:    args[2],
		}); err != nil {
			s.writeError(w, err)
			break
		}
		w.WriteString("OK")
	case "DEL":
		if len(args) < 2 {
			writeArgumentCountError(w, name)
			break
		}
		deleted := 0
		for _, key := range args[1:] {
			_, err := s.kv.Get(string(key))
			present := err == nil
			if err := s.kv.Delete(string(key)); err != nil {
				s.writeError(w, err)
				return true
			}
			if present {
				deleted++
			}
		}
		w.WriteInt(deleted)
	case "EXISTS":
		if len(args) < 2 {
			writeArgumentCountError(w, name)
			break
		}
		existing := 0
		for _, key := range args[1:] {
			if _, err := s.kv.Get(string(key)); err == nil {
				existing++
			}
		}
		w.WriteInt(existing)
	case "KEYS":
		if len(args) != 2 {
			writeArgumentCountError(w, name)
			break
		}
		pattern := string(args[1])
		var keys []string
		for _, key := range s.kv.Keys() {
			if match.Match(key, pattern) {
				keys = append(keys, key)
			}
		}
		w.WriteArray(len(keys))
		for _, key := range keys {
			w.WriteBulkString(key)
		}
	case "DBSIZE":
		w.WriteInt(s.kv.Len())
	default:
		w.WriteError("ERR unknown command '" + string(args[0]) + "'")
	}
	return true
}

func (s *RESPServer) writeError(w replyWriter, err error) {
	if !errors.Is(err, store.ErrFrameTooLarge) && !errors.Is(err, store.ErrInvalidKey) {
		s.logger.Error().Err(err).Msg("store operation failed")
	}
	w.WriteError("ERR " + err.Error())
}

func writeArgumentCountError(w replyWriter, name string) {
	w.WriteError("ERR wrong number of arguments for '" + strings.ToLower(name) + "' command")
}
