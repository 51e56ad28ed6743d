package davxml

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// ParseEntries converts every response of a multistatus document into an Entry.
func ParseEntries(ctx context.Context, r io.Reader) ([]*Entry, error) {
	ms, err := decodeMultistatus(r)
	if err != nil {
		return nil, err
	}
	return convertResponses(ctx, ms.Responses), nil
}

// ParseListing is ParseEntries without the first response, which describes the
// requested collection itself when Depth is 1.
func ParseListing(ctx context.Context, r io.Reader) ([]*Entry, error) {
	ms, err := decodeMultistatus(r)
	if err != nil {
		return nil, err
	}
	if len(ms.Responses) == 0 {
		return []*Entry{}, nil
	}
	return convertResponses(ctx, ms.Responses[1:]), nil
}

// Dirs keeps the directories only.
func Dirs(ents []*Entry) []*Entry {
	rs := make([]*Entry, 0, len(ents))
	for _, ent := range ents {
		if ent.IsDir {
			rs = append(rs, ent)
		}
	}
	return rs
}

func decodeMultistatus(r io.Reader) (*Multistatus, error) {
	ms := &Multistatus{}
	if err := xml.NewDecoder(r).Decode(ms); err != nil {
		return nil, fmt.Errorf("decode multistatus failed, err:%w", err)
	}
	return ms, nil
}

func convertResponses(ctx context.Context, resps []*Response) []*Entry {
	rs := make([]*Entry, 0, len(resps))
	for _, resp := range resps {
		prop, ok := selectProp(resp.Propstats)
		if !ok {
			logutil.GetLogger(ctx).Warn("skip response without valid propstat", zap.String("href", resp.Href))
			continue
		}
		rs = append(rs, convertPropToEntry(strings.TrimSpace(resp.Href), prop))
	}
	return rs
}

// selectProp 单个propstat直接使用, 多个时取状态为200的那个
func selectProp(pss []*Propstat) (*Prop, bool) {
	if len(pss) == 1 {
		if pss[0].Prop == nil {
			return nil, false
		}
		return pss[0].Prop, true
	}
	for _, ps := range pss {
		if ps.Prop == nil || !strings.Contains(ps.Status, "200") {
			continue
		}
		return ps.Prop, true
	}
	return nil, false
}

func convertPropToEntry(href string, prop *Prop) *Entry {
	ent := &Entry{
		Name:         strings.TrimSpace(prop.DisplayName),
		Path:         href,
		IsDir:        prop.ResourceType.isCollection(),
		Size:         parseContentLength(prop.ContentLength),
		LastModified: parseLastModified(prop.LastModified),
		ContentType:  strings.TrimSpace(prop.ContentType),
		ETag:         strings.TrimSpace(prop.ETag),
		FileID:       strings.TrimSpace(prop.FileID),
	}
	if len(ent.Name) == 0 {
		ent.Name = nameFromHref(href)
	}
	ent.Type = EntryTypeFile
	if ent.IsDir {
		ent.Type = EntryTypeDirectory
	}
	return ent
}

func parseContentLength(v string) int64 {
	v = strings.TrimSpace(v)
	if len(v) == 0 {
		return 0
	}
	sz, err := strconv.ParseInt(v, 10, 64)
	if err != nil || sz < 0 {
		return 0
	}
	return sz
}

func parseLastModified(v string) time.Time {
	v = strings.TrimSpace(v)
	if len(v) == 0 {
		return time.Time{}
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nameFromHref(href string) string {
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	} else if unescaped, err := url.PathUnescape(href); err == nil {
		p = unescaped
	}
	p = strings.TrimSuffix(p, "/")
	if len(p) == 0 {
		return ""
	}
	return path.Base(p)
}
