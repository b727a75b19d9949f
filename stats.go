package gfx

import (
	"fmt"
	"log/slog"
)

// RendererStats counts the work done by a BatchRenderer.
type RendererStats struct {
	DrawCalls int
	Vertices  int
	Indices   int

	// MaterialFlushes and CapacityFlushes count flushes triggered by
	// Push, by cause.
	MaterialFlushes int
	CapacityFlushes int

	// SkippedDraws counts draws dropped before reaching the driver.
	SkippedDraws int
}

func (rs RendererStats) String() string {
	return fmt.Sprintf("%d draw calls, %d vertices, %d indices (%d material / %d capacity flushes, %d skipped)",
		rs.DrawCalls, rs.Vertices, rs.Indices, rs.MaterialFlushes, rs.CapacityFlushes, rs.SkippedDraws)
}

// Merge adds the counts in s to rs.
func (rs *RendererStats) Merge(s RendererStats) {
	rs.DrawCalls += s.DrawCalls
	rs.Vertices += s.Vertices
	rs.Indices += s.Indices
	rs.MaterialFlushes += s.MaterialFlushes
	rs.CapacityFlushes += s.CapacityFlushes
	rs.SkippedDraws += s.SkippedDraws
}

// LogValue implements slog.LogValuer.
func (rs RendererStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("draw_calls", rs.DrawCalls),
		slog.Int("vertices", rs.Vertices),
		slog.Int("indices", rs.Indices),
		slog.Int("material_flushes", rs.MaterialFlushes),
		slog.Int("capacity_flushes", rs.CapacityFlushes),
		slog.Int("skipped_draws", rs.SkippedDraws),
	)
}
