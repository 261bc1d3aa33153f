package kde

const (
	// Bounds extends the sample range by BoundsCut bandwidths on each
	// side; the Gaussian tail beyond is below 1e-15.
	BoundsCut = 8.0

	// the quantile bracket search uses max(len(points), MinGridSize) grid
	// points
	MinGridSize = 100

	ClipZScore = 3.0

	MinClipPointCnt = 5
)
