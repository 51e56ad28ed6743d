package davxml

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nextcloudListing = `<?xml version="1.0"?>
<d:multistatus xmlns:d="DAV:" xmlns:s="http://sabredav.org/ns" xmlns:oc="http://owncloud.org/ns" xmlns:nc="http://nextcloud.org/ns">
 <d:response>
  <d:href>/remote.php/dav/files/alice%40example.com/</d:href>
  <d:propstat>
   <d:prop>
    <d:getlastmodified>Mon, 06 Jan 2025 10:00:00 GMT</d:getlastmodified>
    <d:resourcetype><d:collection/></d:resourcetype>
    <oc:fileid>2</oc:fileid>
   </d:prop>
   <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
  <d:propstat>
   <d:prop>
    <d:displayname/>
    <d:getcontentlength/>
   </d:prop>
   <d:status>HTTP/1.1 404 Not Found</d:status>
  </d:propstat>
 </d:response>
 <d:response>
  <d:href>/remote.php/dav/files/alice%40example.com/cashier/</d:href>
  <d:propstat>
   <d:prop>
    <d:displayname>cashier</d:displayname>
    <d:getlastmodified>Tue, 07 Jan 2025 11:30:00 GMT</d:getlastmodified>
    <d:getetag>&quot;677d0d08c1b2e&quot;</d:getetag>
    <d:resourcetype><d:collection/></d:resourcetype>
    <oc:fileid>181</oc:fileid>
   </d:prop>
   <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
  <d:propstat>
   <d:prop>
    <d:getcontenttype/>
    <d:getcontentlength/>
   </d:prop>
   <d:status>HTTP/1.1 404 Not Found</d:status>
  </d:propstat>
 </d:response>
 <d:response>
  <d:href>/remote.php/dav/files/alice%40example.com/daily_takings.sqlite3</d:href>
  <d:propstat>
   <d:prop>
    <d:displayname>daily_takings.sqlite3</d:displayname>
    <d:getlastmodified>Wed, 08 Jan 2025 08:15:00 GMT</d:getlastmodified>
    <d:getetag>&quot;a1b2c3&quot;</d:getetag>
    <d:getcontenttype>application/octet-stream</d:getcontenttype>
    <d:resourcetype/>
    <d:getcontentlength>20480</d:getcontentlength>
    <oc:fileid>205</oc:fileid>
   </d:prop>
   <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
 </d:response>
 <d:response>
  <d:href>/remote.php/dav/files/alice%40example.com/Shared%20Docs/</d:href>
  <d:propstat>
   <d:prop>
    <d:resourcetype><d:collection/></d:resourcetype>
   </d:prop>
   <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
 </d:response>
</d:multistatus>`

func TestParseListingSkipsParent(t *testing.T) {
	ents, err := ParseListing(context.Background(), strings.NewReader(nextcloudListing))
	require.NoError(t, err)
	require.Equal(t, 3, len(ents))

	dir := ents[0]
	assert.Equal(t, "cashier", dir.Name)
	assert.Equal(t, "/remote.php/dav/files/alice%40example.com/cashier/", dir.Path)
	assert.True(t, dir.IsDir)
	assert.Equal(t, EntryTypeDirectory, dir.Type)
	assert.Equal(t, int64(0), dir.Size)
	assert.Equal(t, "181", dir.FileID)
	assert.Equal(t, `"677d0d08c1b2e"`, dir.ETag)

	file := ents[1]
	assert.Equal(t, "daily_takings.sqlite3", file.Name)
	assert.False(t, file.IsDir)
	assert.Equal(t, EntryTypeFile, file.Type)
	assert.Equal(t, int64(20480), file.Size)
	assert.Equal(t, "application/octet-stream", file.ContentType)
	assert.Equal(t, "205", file.FileID)
	assert.True(t, file.LastModified.Equal(time.Date(2025, 1, 8, 8, 15, 0, 0, time.UTC)))

	noname := ents[2]
	assert.Equal(t, "Shared Docs", noname.Name)
	assert.True(t, noname.IsDir)
	assert.True(t, noname.LastModified.IsZero())
}

func TestParseEntriesKeepsParent(t *testing.T) {
	ents, err := ParseEntries(context.Background(), strings.NewReader(nextcloudListing))
	require.NoError(t, err)
	require.Equal(t, 4, len(ents))
	assert.True(t, ents[0].IsDir)
	assert.Equal(t, "alice@example.com", ents[0].Name)
	assert.Equal(t, "2", ents[0].FileID)
}

func TestParseListingCount(t *testing.T) {
	build := func(k int) string {
		sb := strings.Builder{}
		sb.WriteString(`<D:multistatus xmlns:D="DAV:">`)
		for i := 0; i < k; i++ {
			sb.WriteString(`<D:response><D:href>/f</D:href><D:propstat><D:prop><D:resourcetype/></D:prop><D:status>HTTP/1.1 200 OK</D:status></D:propstat></D:response>`)
		}
		sb.WriteString(`</D:multistatus>`)
		return sb.String()
	}
	for k := 0; k < 20; k++ {
		ents, err := ParseListing(context.Background(), strings.NewReader(build(k)))
		require.NoError(t, err)
		want := k - 1
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, len(ents), "k:%d", k)
	}
}

func TestParseWithoutPrefix(t *testing.T) {
	doc := `<multistatus xmlns="DAV:">
  <response><href>/dav/</href><propstat><prop><resourcetype><collection/></resourcetype></prop><status>HTTP/1.1 200 OK</status></propstat></response>
  <response><href>/dav/a.db</href><propstat><prop><displayname>a.db</displayname><getcontentlength>12</getcontentlength><resourcetype></resourcetype></prop><status>HTTP/1.1 200 OK</status></propstat></response>
</multistatus>`
	ents, err := ParseListing(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 1, len(ents))
	assert.Equal(t, "a.db", ents[0].Name)
	assert.Equal(t, int64(12), ents[0].Size)
	assert.False(t, ents[0].IsDir)
}

func TestSkipResponseWithoutOKPropstat(t *testing.T) {
	doc := `<d:multistatus xmlns:d="DAV:">
  <d:response><d:href>/dav/</d:href><d:propstat><d:prop/><d:status>HTTP/1.1 200 OK</d:status></d:propstat></d:response>
  <d:response><d:href>/dav/broken</d:href>
    <d:propstat><d:prop><d:displayname>x</d:displayname></d:prop><d:status>HTTP/1.1 403 Forbidden</d:status></d:propstat>
    <d:propstat><d:prop><d:getetag/></d:prop><d:status>HTTP/1.1 404 Not Found</d:status></d:propstat>
  </d:response>
  <d:response><d:href>/dav/nopropstat</d:href></d:response>
  <d:response><d:href>/dav/ok.db</d:href><d:propstat><d:prop><d:getcontentlength>7</d:getcontentlength></d:prop><d:status>HTTP/1.1 200 OK</d:status></d:propstat></d:response>
</d:multistatus>`
	ents, err := ParseListing(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 1, len(ents))
	assert.Equal(t, "ok.db", ents[0].Name)
	assert.Equal(t, int64(7), ents[0].Size)
}

func TestMalformedValues(t *testing.T) {
	doc := `<d:multistatus xmlns:d="DAV:">
  <d:response><d:href>/dav/</d:href><d:propstat><d:prop/><d:status>HTTP/1.1 200 OK</d:status></d:propstat></d:response>
  <d:response><d:href>/dav/x</d:href><d:propstat><d:prop><d:getcontentlength>abc</d:getcontentlength><d:getlastmodified>yesterday</d:getlastmodified></d:prop><d:status>HTTP/1.1 200 OK</d:status></d:propstat></d:response>
</d:multistatus>`
	ents, err := ParseListing(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 1, len(ents))
	assert.Equal(t, int64(0), ents[0].Size)
	assert.True(t, ents[0].LastModified.IsZero())
}

func TestParseInvalidDocument(t *testing.T) {
	_, err := ParseListing(context.Background(), strings.NewReader(`<d:multistatus xmlns:d="DAV:"><d:response>`))
	assert.Error(t, err)
	_, err = ParseListing(context.Background(), strings.NewReader(`<html><body>login</body></html>`))
	assert.Error(t, err)
	_, err = ParseEntries(context.Background(), strings.NewReader(``))
	assert.Error(t, err)
}

func TestDirs(t *testing.T) {
	ents, err := ParseListing(context.Background(), strings.NewReader(nextcloudListing))
	require.NoError(t, err)
	dirs := Dirs(ents)
	require.Equal(t, 2, len(dirs))
	for _, d := range dirs {
		assert.True(t, d.IsDir)
	}
}

func TestBuildPropfindBody(t *testing.T) {
	body := string(BuildPropfindBody())
	for _, prop := range []string{"displayname", "getlastmodified", "getetag", "getcontenttype", "resourcetype", "getcontentlength", "oc:fileid"} {
		assert.Contains(t, body, prop)
	}
}
