package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Worker is a background loop owned by the application. Start blocks until
// ctx is cancelled.
type Worker interface {
	Name() string
	Start(ctx context.Context)
}
