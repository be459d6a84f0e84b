package router

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/api"
	"github.com/zdunecki/domobject/api/v1/objects"
	"github.com/zdunecki/domobject/pkg/domobject"
	"github.com/zdunecki/domobject/pkg/snapshot"
)

type Snapshotter interface {
	Take(ctx context.Context, req snapshot.Request) (*domobject.Result, error)
	Backends() []string
}

type router struct {
	snapshots Snapshotter
	timeout   time.Duration

	log *log.Entry
}

func New(apiv1 api.API, snapshots Snapshotter, timeout time.Duration, log *log.Entry) {
	r := &router{
		snapshots: snapshots,
		timeout:   timeout,
		log:       log,
	}

	v1Path := "/v1"
	snapshotsPath := v1Path + "/snapshots"
	backendsPath := v1Path + "/backends"

	// snapshots
	apiv1.Get(snapshotsPath, r.snapshotsGet)
	apiv1.Post(snapshotsPath, r.snapshotsCreate, api.WithMaxBytes(objects.DefaultMaxPOSTContentLength))

	// backends
	apiv1.Get(backendsPath, r.backendsGetAll)
}

func (r *router) backendsGetAll(c api.Context) {
	c.JSON(&objects.ResponseBackends{
		Backends: r.snapshots.Backends(),
	})
}
