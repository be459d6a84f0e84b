package api

import (
	"context"
	"net/http"

	"github.com/gorilla/schema"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ContextFn func(ctx Context)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Context is valid for one request. Status setters take effect on the next write.
type Context interface {
	BadRequest() Context
	RequestEntityTooLarge() Context
	InternalError() Context
	GatewayTimeout() Context

	RequestContext() context.Context

	ResponseWriter() http.ResponseWriter
	Request() *http.Request

	Bind(interface{}) error
	BindQuery(i interface{}) error

	JSON(interface{}) error
}

type ctx struct {
	writer  http.ResponseWriter
	request *http.Request
	status  int
}

func (c *ctx) BadRequest() Context {
	c.status = http.StatusBadRequest
	return c
}

func (c *ctx) RequestEntityTooLarge() Context {
	c.status = http.StatusRequestEntityTooLarge
	return c
}

func (c *ctx) InternalError() Context {
	c.status = http.StatusInternalServerError
	return c
}

func (c *ctx) GatewayTimeout() Context {
	c.status = http.StatusGatewayTimeout
	return c
}

func (c *ctx) Bind(i interface{}) error {
	return json.NewDecoder(c.request.Body).Decode(i)
}

func (c *ctx) BindQuery(i interface{}) error {
	values := c.request.URL.Query()
	if len(values) == 0 {
		return nil
	}

	return decoder.Decode(i, values)
}

func (c *ctx) ResponseWriter() http.ResponseWriter {
	return c.writer
}

func (c *ctx) Request() *http.Request {
	return c.request
}

func (c *ctx) JSON(i interface{}) error {
	b, err := json.Marshal(i)
	if err != nil {
		c.writer.WriteHeader(http.StatusInternalServerError)
		return err
	}

	c.writer.Header().Set("Content-Type", "application/json")
	c.writer.WriteHeader(c.status)

	_, err = c.writer.Write(b)

	return err
}

func (c *ctx) RequestContext() context.Context {
	return c.request.Context()
}
