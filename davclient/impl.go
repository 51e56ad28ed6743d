package davclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/ncbackup/davxml"
	"go.uber.org/zap"
)

const (
	methodMkcol    = "MKCOL"
	methodPropfind = "PROPFIND"
)

const (
	defaultDavRoot        = "/remote.php/dav/files/"
	defaultMaxMessageSize = 512
)

var (
	defaultTransport = &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		IdleConnTimeout:     20 * time.Second,
		MaxIdleConns:        5,
		MaxIdleConnsPerHost: 1,
	}
)

type defaultClient struct {
	c   *config
	cli *http.Client
}

func (d *defaultClient) buildUrl(remote string, dir bool) string {
	return d.c.Endpoint + defaultDavRoot + url.PathEscape(d.c.User) + escapePath(remote, dir)
}

func (d *defaultClient) applyAuth(req *http.Request) {
	if len(d.c.User) == 0 {
		return
	}
	req.SetBasicAuth(d.c.User, d.c.Password)
}

func (d *defaultClient) call(ctx context.Context, method string, remote string, dir bool, body io.Reader, fn func(req *http.Request)) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, d.buildUrl(remote, dir), body)
	if err != nil {
		return nil, fmt.Errorf("build request failed, method:%s, err:%w", method, err)
	}
	d.applyAuth(req)
	if fn != nil {
		fn(req)
	}
	rsp, err := d.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request failed, method:%s, path:%s, err:%w", method, remote, err)
	}
	return rsp, nil
}

func (d *defaultClient) checkStatus(rsp *http.Response, method string, remote string, codes ...int) error {
	for _, code := range codes {
		if rsp.StatusCode == code {
			return nil
		}
	}
	raw, _ := io.ReadAll(io.LimitReader(rsp.Body, defaultMaxMessageSize))
	return &StatusError{
		Method:  method,
		Path:    remote,
		Code:    rsp.StatusCode,
		Message: strings.TrimSpace(string(raw)),
	}
}

func drainAndClose(rsp *http.Response) {
	_, _ = io.Copy(io.Discard, rsp.Body)
	_ = rsp.Body.Close()
}

func (d *defaultClient) MakeDir(ctx context.Context, dir string) (bool, error) {
	rsp, err := d.call(ctx, methodMkcol, dir, false, nil, nil)
	if err != nil {
		return false, err
	}
	defer drainAndClose(rsp)
	// 405 表示目录已经存在
	if rsp.StatusCode == http.StatusMethodNotAllowed {
		logutil.GetLogger(ctx).Debug("remote dir already exists", zap.String("dir", dir))
		return false, nil
	}
	if err := d.checkStatus(rsp, methodMkcol, dir, http.StatusCreated, http.StatusOK); err != nil {
		return false, err
	}
	logutil.GetLogger(ctx).Debug("remote dir created", zap.String("dir", dir))
	return true, nil
}

func (d *defaultClient) MakeDirAll(ctx context.Context, dir string) error {
	for _, item := range splitDirItems(dir) {
		if _, err := d.MakeDir(ctx, item); err != nil {
			return fmt.Errorf("make dir failed, dir:%s, err:%w", item, err)
		}
	}
	return nil
}

func (d *defaultClient) Upload(ctx context.Context, remote string, r io.Reader, size int64) error {
	if size == 0 {
		r = http.NoBody
	}
	rsp, err := d.call(ctx, http.MethodPut, remote, false, r, func(req *http.Request) {
		req.Header.Set("Content-Type", "application/octet-stream")
		if size >= 0 {
			req.ContentLength = size
		}
	})
	if err != nil {
		return err
	}
	defer drainAndClose(rsp)
	return d.checkStatus(rsp, http.MethodPut, remote, http.StatusCreated, http.StatusNoContent, http.StatusOK)
}

func (d *defaultClient) propfind(ctx context.Context, remote string, depth string, dir bool) (*http.Response, error) {
	rsp, err := d.call(ctx, methodPropfind, remote, dir, bytes.NewReader(davxml.BuildPropfindBody()), func(req *http.Request) {
		req.Header.Set("Content-Type", "application/xml; charset=utf-8")
		req.Header.Set("Depth", depth)
	})
	if err != nil {
		return nil, err
	}
	if err := d.checkStatus(rsp, methodPropfind, remote, http.StatusMultiStatus); err != nil {
		drainAndClose(rsp)
		return nil, err
	}
	return rsp, nil
}

func (d *defaultClient) List(ctx context.Context, dir string) ([]*davxml.Entry, error) {
	rsp, err := d.propfind(ctx, dir, "1", true)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(rsp)
	ents, err := davxml.ParseListing(ctx, rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing failed, dir:%s, err:%w", dir, err)
	}
	return ents, nil
}

func (d *defaultClient) Stat(ctx context.Context, remote string) (*davxml.Entry, error) {
	rsp, err := d.propfind(ctx, remote, "0", false)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(rsp)
	ents, err := davxml.ParseEntries(ctx, rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse stat failed, path:%s, err:%w", remote, err)
	}
	if len(ents) == 0 {
		return nil, fmt.Errorf("no entry found in stat response, path:%s", remote)
	}
	return ents[0], nil
}

func New(opts ...Option) (IClient, error) {
	c := &config{
		Timeout: 600 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.Endpoint) == 0 {
		return nil, fmt.Errorf("no endpoint found")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint failed, err:%w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported endpoint scheme:%s", u.Scheme)
	}
	if len(c.User) == 0 {
		return nil, fmt.Errorf("no user found")
	}
	c.Endpoint = strings.TrimSuffix(c.Endpoint, "/")
	cli := c.Client
	if cli == nil {
		cli = &http.Client{
			Timeout:   c.Timeout,
			Transport: defaultTransport,
		}
	}
	return &defaultClient{c: c, cli: cli}, nil
}
