package router

import (
	"context"
	"errors"

	"github.com/zdunecki/domobject/api"
	"github.com/zdunecki/domobject/api/v1/objects"
	"github.com/zdunecki/domobject/pkg/browser"
	"github.com/zdunecki/domobject/pkg/snapshot"
)

func (r *router) snapshotsGet(c api.Context) {
	req := &objects.RequestSnapshot{}

	if err := c.BindQuery(req); err != nil {
		r.log.Debug(err)
		c.BadRequest().JSON(&objects.APIError{
			Type:    objects.ErrorTypeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	r.take(c, req)
}

func (r *router) snapshotsCreate(c api.Context) {
	req := &objects.RequestSnapshot{}

	if err := c.Bind(req); err != nil {
		r.log.Debug(err)
		c.BadRequest().JSON(&objects.APIError{
			Type:    objects.ErrorTypeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	r.take(c, req)
}

func (r *router) take(c api.Context, req *objects.RequestSnapshot) {
	ctx := c.RequestContext()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	result, err := r.snapshots.Take(ctx, snapshot.Request{
		URL:      req.URL,
		Backend:  req.Backend,
		MaxDepth: req.MaxDepth,
	})
	if err != nil {
		r.fail(c, err)
		return
	}

	c.JSON(result)
}

func (r *router) fail(c api.Context, err error) {
	switch {
	case errors.Is(err, snapshot.ErrURLIsRequired),
		errors.Is(err, browser.ErrUnknownBackend),
		errors.Is(err, browser.ErrSchemeNotAllowed):
		c.BadRequest().JSON(&objects.APIError{
			Type:    objects.ErrorTypeInvalidRequest,
			Message: err.Error(),
		})
	case errors.Is(err, context.DeadlineExceeded):
		r.log.Warn(err)
		c.GatewayTimeout().JSON(&objects.APIError{
			Type:    objects.ErrorTypeTimeout,
			Message: err.Error(),
		})
	default:
		r.log.Error(err)
		c.InternalError().JSON(&objects.APIError{
			Type:    objects.ErrorTypeInternal,
			Message: err.Error(),
		})
	}
}
