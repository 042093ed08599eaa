package formhttp

import (
	"context"
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// stream pushes board changes to a DataStar client: each changed target is
// patched with a message fragment, and the submit gate plus field marks are
// sent as signals. It runs until the client goes away.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	inst, err := h.instance(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	var last Snapshot
	for {
		changed := inst.board.Changed()
		snap := inst.board.Snapshot()
		if err := patch(sse, last, snap); err != nil {
			h.logger.DebugContext(ctx, "form stream closed",
				logger.Session(chi.URLParam(r, "id")),
				logger.Error(err),
			)
			return
		}
		last = snap

		select {
		case <-ctx.Done():
			return
		case <-changed:
		}
	}
}

func patch(sse *datastar.ServerSentEventGenerator, prev, next Snapshot) error {
	for _, target := range slices.Sorted(maps.Keys(next.Messages)) {
		content := next.Messages[target]
		if old, ok := prev.Messages[target]; ok && old == content {
			continue
		}
		if err := sse.PatchElementTempl(
			messageFragment(content),
			datastar.WithSelector(target),
			datastar.WithMode(datastar.ElementPatchModeInner),
		); err != nil {
			return err
		}
	}

	if prev.Version != 0 && prev.CanSubmit == next.CanSubmit && maps.Equal(prev.Invalid, next.Invalid) {
		return nil
	}
	signals, err := json.Marshal(map[string]any{
		"canSubmit": next.CanSubmit,
		"invalid":   next.Invalid,
	})
	if err != nil {
		return err
	}
	return sse.PatchSignals(signals)
}

// messageFragment wraps already-escaped message content.
func messageFragment(content string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<span class="formkit-msg">`+content+`</span>`)
		return err
	})
}
