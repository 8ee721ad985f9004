package renderer

import "chartrender/chart"

// Sizes are in pixels.
const (
	dividerW          = 1
	dividerH          = 1
	simultaneousLineW = 1
	laneW             = 14
	trackW            = laneW * chart.Lanes
	trackOutlineW     = 7
	// annotation column left of the track: bar info, tempo changes, skill labels
	trackExtraW  = 50
	noteResizeW  = laneW + dividerW*8
	jacketW      = 240
	jacketH      = 240
	beatH        = 96
	barH         = beatH * 4
	barExtraH    = laneW
	margin       = laneW
	jacketMargin = margin * 2

	beatsPerBar     = 4
	beatsPerSegment = 16
	segmentH        = barH * (beatsPerSegment / beatsPerBar)
)

const backProjectionFactor = 1.8

var flickTopOffset = Offset{X: 0, Y: 10}
var directionalTopOffset = Offset{X: -5, Y: 0}

// canvasW is the width of the track image before segmentation.
const canvasW = trackExtraW + trackW + dividerW + trackOutlineW
