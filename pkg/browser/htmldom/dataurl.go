package htmldom

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

var errInvalidDataURL = errors.New("invalid data url")

// decodeDataURL decodes data:[<mediatype>][;base64],<data>.
func decodeDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, errInvalidDataURL
	}

	i := strings.IndexByte(s, ',')
	if i < 0 {
		return nil, errInvalidDataURL
	}

	meta, data := s[len("data:"):i], s[i+1:]

	if strings.HasSuffix(meta, ";base64") {
		if unescaped, err := url.PathUnescape(data); err == nil {
			data = unescaped
		}
		if b, err := base64.StdEncoding.DecodeString(data); err == nil {
			return b, nil
		}
		return base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
	}

	unescaped, err := url.PathUnescape(data)
	if err != nil {
		return nil, err
	}
	return []byte(unescaped), nil
}
