package davxml

const defaultPropfindBody = `<?xml version="1.0" encoding="UTF-8"?>
<d:propfind xmlns:d="DAV:" xmlns:oc="http://owncloud.org/ns">
  <d:prop>
    <d:displayname />
    <d:getlastmodified />
    <d:getetag />
    <d:getcontenttype />
    <d:resourcetype />
    <d:getcontentlength />
    <oc:fileid />
  </d:prop>
</d:propfind>`

// BuildPropfindBody returns the request body asking for every property an Entry carries.
func BuildPropfindBody() []byte {
	return []byte(defaultPropfindBody)
}
