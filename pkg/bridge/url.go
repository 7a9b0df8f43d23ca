package bridge

import (
	"net/url"
	"path/filepath"

	"github.com/mesh-intelligence/shelf/internal/paths"
)

type urlBridge struct{}

// URL returns the bridge for *url.URL. A URL is stored as its binary
// encoding. Reading also accepts a string: an absolute URL is parsed as is,
// anything else is treated as a file path (a leading "~" expands to the home
// directory) and returned as a file URL. A nil URL is absent.
func URL() Bridge[*url.URL] { return urlBridge{} }

func (urlBridge) Serialize(u *url.URL) (any, bool) {
	if u == nil {
		return nil, false
	}
	data, err := u.MarshalBinary()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (urlBridge) Deserialize(native any) (*url.URL, bool) {
	switch v := native.(type) {
	case []byte:
		u := new(url.URL)
		if err := u.UnmarshalBinary(v); err != nil {
			return nil, false
		}
		return u, true
	case string:
		if v == "" {
			return nil, false
		}
		if u, err := url.Parse(v); err == nil && u.IsAbs() {
			return u, true
		}
		return fileURL(v)
	default:
		return nil, false
	}
}

func fileURL(path string) (*url.URL, bool) {
	expanded, err := paths.ExpandHome(path)
	if err != nil {
		return nil, false
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, false
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, true
}
