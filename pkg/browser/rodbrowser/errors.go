package rodbrowser

import "errors"

var errForeignElement = errors.New("element does not belong to this page")
