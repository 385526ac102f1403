package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrGateway           = errors.New("model gateway")
	ErrUnavailable       = fmt.Errorf("%w: model unavailable", ErrGateway)
	ErrEmptyResponse     = fmt.Errorf("%w: the Oracle remained silent", ErrGateway)
	ErrMalformedResponse = fmt.Errorf("%w: malformed model response", ErrGateway)
)
