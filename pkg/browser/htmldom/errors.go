package htmldom

import "errors"

var errForeignElement = errors.New("element does not belong to this document")
