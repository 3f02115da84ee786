package interfaces

import (
	"context"

	usertypes "github.com/goliatone/go-users/pkg/types"
)

// ActivityRecord mirrors the go-users activity record contract so hosts can
// forward problem changes to their activity feed unchanged.
type ActivityRecord = usertypes.ActivityRecord

// ActivitySink receives activity records. go-users activity sinks satisfy it.
type ActivitySink interface {
	Log(ctx context.Context, record ActivityRecord) error
}
