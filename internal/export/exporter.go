package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"c4kit/internal/errors"
	"c4kit/internal/model"
	"c4kit/internal/slogutil"
	"c4kit/internal/view"
	"c4kit/internal/workspace"
)

// Exporter turns the views of a built workspace into documents
type Exporter struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewExporter creates a new exporter. A nil logger discards output.
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Exporter{
		logger: logger,
		now:    time.Now,
	}
}

// Export dehydrates the views named by keys, or every view when keys is
// empty, into a new document.
func (e *Exporter) Export(ctx context.Context, ws *workspace.Workspace, keys ...string) (*Document, error) {
	views := ws.Views
	if len(keys) > 0 {
		views = make([]*view.DynamicView, 0, len(keys))
		for _, key := range keys {
			v, ok := ws.View(key)
			if !ok {
				return nil, errors.Errorf(errors.ViewNotFound, "workspace %q has no dynamic view %q", ws.Name, key)
			}
			views = append(views, v)
		}
	}

	doc := &Document{
		Schema:    SchemaVersion,
		ID:        uuid.NewString(),
		Generated: e.now().UTC().Format(time.RFC3339),
		Workspace: ws.Name,
		Views:     make([]view.DynamicViewIO, 0, len(views)),
	}

	steps := 0
	for _, v := range views {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		io := view.Dehydrate(v)
		steps += len(io.Relationships)
		doc.Views = append(doc.Views, *io)
	}

	e.logger.Debug("Exported views",
		"document", doc.ID,
		"views", len(doc.Views),
		"steps", steps,
	)
	return doc, nil
}

// HydrateAll restores every view of doc against m, in document order.
func HydrateAll(ctx context.Context, doc *Document, m *model.Model) ([]*view.DynamicView, error) {
	seen := make(map[string]bool, len(doc.Views))
	views := make([]*view.DynamicView, 0, len(doc.Views))

	for i := range doc.Views {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		io := &doc.Views[i]
		if seen[io.Key] {
			return nil, errors.Errorf(errors.InvalidFormat, "view %q appears twice in document %s", io.Key, doc.ID)
		}
		seen[io.Key] = true

		v, err := view.Hydrate(io, m)
		if err != nil {
			return nil, errors.NewError(errors.CodeOf(err), fmt.Sprintf("document %s", doc.ID), err)
		}
		views = append(views, v)
	}
	return views, nil
}
