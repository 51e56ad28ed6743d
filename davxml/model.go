package davxml

import (
	"encoding/xml"
	"time"
)

// Multistatus 是 WebDAV 返回的根结构, 字段按本地名匹配, 不区分命名空间前缀
type Multistatus struct {
	XMLName   xml.Name    `xml:"multistatus"`
	Responses []*Response `xml:"response"`
}

// Response 代表每个文件或目录的信息
type Response struct {
	Href      string      `xml:"href"`
	Propstats []*Propstat `xml:"propstat"`
}

// Propstat 包含资源的属性和状态
type Propstat struct {
	Prop   *Prop  `xml:"prop"`
	Status string `xml:"status"`
}

type Prop struct {
	DisplayName   string        `xml:"displayname"`
	LastModified  string        `xml:"getlastmodified"`
	ContentLength string        `xml:"getcontentlength"`
	ContentType   string        `xml:"getcontenttype"`
	ETag          string        `xml:"getetag"`
	ResourceType  *ResourceType `xml:"resourcetype"`
	FileID        string        `xml:"fileid"`
}

// ResourceType 用于区分文件和目录, 含有任意子元素即认为是目录
type ResourceType struct {
	Collection *struct{}     `xml:"collection"`
	Others     []*anyElement `xml:",any"`
}

type anyElement struct {
	XMLName xml.Name
}

func (r *ResourceType) isCollection() bool {
	if r == nil {
		return false
	}
	return r.Collection != nil || len(r.Others) > 0
}

const (
	EntryTypeFile      = "file"
	EntryTypeDirectory = "directory"
)

type Entry struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	IsDir        bool      `json:"is_dir"`
	Type         string    `json:"type"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ContentType  string    `json:"content_type"`
	ETag         string    `json:"etag"`
	FileID       string    `json:"file_id"`
}
