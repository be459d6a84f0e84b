package objects

import "github.com/zdunecki/domobject/api"

const DefaultMaxPOSTContentLength = api.KB * 4

type RequestSnapshot struct {
	URL      string `json:"url" schema:"url"`
	Backend  string `json:"backend,omitempty" schema:"backend"`
	MaxDepth int    `json:"maxDepth,omitempty" schema:"maxDepth"`
}
