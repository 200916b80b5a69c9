// pattern: Functional Core

package layout

import "math"

// ResizePair moves the boundary between two adjacent panels by delta
// pixels. The pair's combined width is conserved, each side is clamped to
// its minimum with the adjustment transferred to the other side, and a pair
// wider than the container gives up the overflow from its larger side.
func ResizePair(leftPx, rightPx, delta, leftMin, rightMin, containerWidth float64) (float64, float64) {
	total := leftPx + rightPx
	left := leftPx + delta
	right := rightPx - delta

	if left < leftMin {
		left = leftMin
		right = total - left
	}
	if right < rightMin {
		right = rightMin
		left = total - right
	}
	if left < 0 {
		left, right = 0, total
	}
	if right < 0 {
		left, right = total, 0
	}

	if over := left + right - containerWidth; containerWidth > 0 && over > 0 {
		if left >= right {
			left = math.Max(0, left-over)
		} else {
			right = math.Max(0, right-over)
		}
	}
	return left, right
}
