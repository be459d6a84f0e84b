package cdpbrowser

import "errors"

var (
	errForeignElement = errors.New("element does not belong to this tab")
	errNotAnObject    = errors.New("call did not return an object")
)
