// Package davtest runs an in-process Nextcloud style WebDAV endpoint for tests.
package davtest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/webdav"
)

const (
	davRoot = "/remote.php/dav/files"
)

type Request struct {
	Method string
	Path   string
}

type Server struct {
	*httptest.Server
	FS       webdav.FileSystem
	User     string
	Password string

	failPut  atomic.Int32
	mu       sync.Mutex
	requests []Request
}

// New starts a server holding a single account. Close it when done.
func New(user string, password string) *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		FS:       webdav.NewMemFS(),
		User:     user,
		Password: password,
	}
	h := &webdav.Handler{
		Prefix:     davRoot + "/" + user,
		FileSystem: s.FS,
		LockSystem: webdav.NewMemLS(),
	}
	engine := gin.New()
	grp := engine.Group(davRoot, s.recordMiddleware(), basicAuthMiddleware(map[string]string{user: password}), s.faultMiddleware())
	for _, m := range AllowMethods {
		grp.Handle(m, "/*path", gin.WrapH(h))
	}
	s.Server = httptest.NewServer(engine)
	return s
}

func (s *Server) recordMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: c.Request.Method, Path: c.Request.URL.Path})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) faultMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPut {
			c.Next()
			return
		}
		if s.failPut.Add(-1) >= 0 {
			_, _ = io.Copy(io.Discard, c.Request.Body)
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		s.failPut.Store(0)
		c.Next()
	}
}

// FailPut makes the next n PUT requests answer 503.
func (s *Server) FailPut(n int) {
	s.failPut.Store(int32(n))
}

// Requests returns the requests seen so far, optionally filtered by method.
func (s *Server) Requests(method string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := make([]Request, 0, len(s.requests))
	for _, r := range s.requests {
		if len(method) != 0 && !strings.EqualFold(r.Method, method) {
			continue
		}
		rs = append(rs, r)
	}
	return rs
}

func (s *Server) Mkdir(name string) error {
	return s.FS.Mkdir(context.Background(), name, 0755)
}

func (s *Server) WriteFile(name string, data []byte) error {
	f, err := s.FS.OpenFile(context.Background(), name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *Server) ReadFile(name string) ([]byte, error) {
	f, err := s.FS.OpenFile(context.Background(), name, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) Stat(name string) (os.FileInfo, error) {
	return s.FS.Stat(context.Background(), name)
}
